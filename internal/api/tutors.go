// internal/api/tutors.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"tutorlink-client/internal/common/errors"
	"tutorlink-client/internal/common/jsonutil"
	"tutorlink-client/internal/verification"
)

// stageWire is one verification stage entry as the API sends it.
type stageWire struct {
	Stage  string          `json:"stage,omitempty"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Notes  string          `json:"notes,omitempty"`
}

// tutorWire is the tutor profile shape relevant to verification. The API nests
// userId either as a plain id string or as a populated user object.
type tutorWire struct {
	ID                 string               `json:"_id"`
	UserID             json.RawMessage      `json:"userId"`
	OverallStatus      string               `json:"overallVerificationStatus"`
	VerificationStages map[string]stageWire `json:"verificationStages"`
}

// TutorByUser fetches the tutor profile owning the verification state.
// Missing profile surfaces as NotFound with the "profile not found" message;
// a rejected session surfaces as Unauthorized.
func (c *Client) TutorByUser(ctx context.Context, userID string) (*verification.Profile, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/tutors/user/"+userID, "tutor_profile", nil, &raw); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError("Tutor profile", "no tutor profile for user "+userID)
		}
		return nil, err
	}
	return parseTutorProfile(raw)
}

func parseTutorProfile(raw json.RawMessage) (*verification.Profile, error) {
	// Look through a possible {data: {...}} envelope before the typed decode.
	envelope := jsonutil.UnwrapObject(raw)
	flattened, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode tutor profile: %w", err)
	}

	var wire tutorWire
	if err := json.Unmarshal(flattened, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode tutor profile: %w", err)
	}
	if wire.ID == "" {
		wire.ID = jsonutil.StringAt(envelope, "id", "tutorId")
	}

	stages := make(map[verification.StageKey]verification.Stage, len(wire.VerificationStages))
	for rawKey, sw := range wire.VerificationStages {
		key, err := verification.ParseStageKey(rawKey)
		if err != nil {
			continue // unknown stage keys from newer API versions are ignored
		}
		stages[key] = verification.Stage{
			Key:    key,
			Status: verification.StageStatus(sw.Status),
			Data:   sw.Data,
			Notes:  sw.Notes,
		}
	}

	return &verification.Profile{
		TutorID: wire.ID,
		UserID:  decodeUserID(wire.UserID),
		State:   verification.NewState(verification.OverallStatus(wire.OverallStatus), stages),
	}, nil
}

// decodeUserID handles userId arriving as "abc123" or as {"_id": "abc123", ...}.
func decodeUserID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err == nil {
		return jsonutil.StringAt(m, "_id", "id")
	}
	return ""
}

// stageSubmission is the PUT body for a stage submit. Status is always the
// client-chosen value for that stage (in_review, or scheduled for the intro
// call); reviewer statuses never originate here.
type stageSubmission struct {
	Stage  verification.StageKey    `json:"stage"`
	Status verification.StageStatus `json:"status"`
	Data   interface{}              `json:"data"`
	Notes  string                   `json:"notes,omitempty"`
}

// SubmitStage sends a stage payload and returns the server's updated stage
// record. Callers must have run client-side validation already.
func (c *Client) SubmitStage(ctx context.Context, tutorID string, payload verification.Payload, notes string) (*verification.Stage, error) {
	key := payload.StageKey()
	body := stageSubmission{
		Stage:  key,
		Status: verification.SubmitStatus(key),
		Data:   payload,
		Notes:  notes,
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPut, "/tutors/"+tutorID+"/verification", "submit_stage", body, &raw); err != nil {
		return nil, err
	}
	return parseStageResponse(raw, key)
}

// parseStageResponse accepts either the updated stage record alone or the
// whole updated tutor profile, and always hands back the stage for key.
func parseStageResponse(raw json.RawMessage, key verification.StageKey) (*verification.Stage, error) {
	envelope := jsonutil.UnwrapObject(raw)

	if _, ok := envelope["verificationStages"]; ok {
		profile, err := parseTutorProfile(raw)
		if err != nil {
			return nil, err
		}
		st := profile.State.Stage(key)
		return &st, nil
	}

	flattened, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode stage response: %w", err)
	}
	var sw stageWire
	if err := json.Unmarshal(flattened, &sw); err != nil {
		return nil, fmt.Errorf("failed to decode stage response: %w", err)
	}
	if sw.Status == "" {
		return nil, fmt.Errorf("stage response carried no status")
	}

	st := verification.Stage{
		Key:    key,
		Status: verification.StageStatus(sw.Status),
		Data:   sw.Data,
		Notes:  sw.Notes,
	}
	return &st, nil
}

// UploadCredentials posts the stage-1 documents as a multipart form and
// returns the updated stage-1 record.
func (c *Client) UploadCredentials(ctx context.Context, tutorID string, files []verification.FileUpload) (*verification.Stage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, file := range files {
		part, err := writer.CreateFormFile("documents", file.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, bytes.NewReader(file.Content)); err != nil {
			return nil, fmt.Errorf("failed to write form file: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	url := c.baseURL + "/tutors/" + tutorID + "/verification/stage1/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var raw json.RawMessage
	if err := c.send(req, "upload_credentials", &raw); err != nil {
		return nil, err
	}
	return parseStageResponse(raw, verification.StageCredentials)
}
