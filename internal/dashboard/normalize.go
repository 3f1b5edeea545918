// internal/dashboard/normalize.go
package dashboard

import (
	"encoding/json"
	"strings"

	"tutorlink-client/internal/common/jsonutil"
)

// Normalizers fold the API's drifting response shapes into the canonical view
// structs. Each is a pure function of the raw body: bad input degrades to
// empty values, never to an error, because a half-rendered dashboard beats a
// blank page.

// NormalizeProfile extracts the display profile. Names may sit at the top
// level or under a nested profile object; the lookup order is fixed so the
// same body always renders the same way.
func NormalizeProfile(raw json.RawMessage) ProfileView {
	m := jsonutil.UnwrapObject(raw)
	return ProfileView{
		UserID:    jsonutil.StringAt(m, "_id", "id", "userId"),
		FirstName: jsonutil.StringAt(m, "firstName", "profile.firstName"),
		LastName:  jsonutil.StringAt(m, "lastName", "profile.lastName"),
		Email:     jsonutil.StringAt(m, "email", "profile.email"),
		Role:      jsonutil.StringAt(m, "role", "userRole"),
		AvatarURL: jsonutil.StringAt(m, "avatarUrl", "profile.avatarUrl", "profilePicture"),
	}
}

func NormalizeClasses(raw json.RawMessage) []Class {
	items := jsonutil.UnwrapList(raw)
	out := make([]Class, 0, len(items))
	for _, m := range items {
		out = append(out, Class{
			ID:              jsonutil.StringAt(m, "_id", "id"),
			Subject:         jsonutil.StringAt(m, "subject", "subjectName", "title"),
			TutorName:       personName(m, "tutorId", "tutor"),
			StudentName:     personName(m, "studentId", "student"),
			StartTime:       jsonutil.StringAt(m, "startTime", "scheduledAt", "date"),
			DurationMinutes: int(jsonutil.NumberAt(m, "durationMinutes", "duration")),
			Status:          jsonutil.StringAt(m, "status"),
			MeetingLink:     jsonutil.StringAt(m, "meetingLink", "zoomLink"),
		})
	}
	return out
}

func NormalizeAssignments(raw json.RawMessage) []Assignment {
	items := jsonutil.UnwrapList(raw)
	out := make([]Assignment, 0, len(items))
	for _, m := range items {
		a := Assignment{
			ID:      jsonutil.StringAt(m, "_id", "id"),
			Title:   jsonutil.StringAt(m, "title", "name"),
			Subject: jsonutil.StringAt(m, "subject", "subjectName"),
			DueDate: jsonutil.StringAt(m, "dueDate", "deadline"),
			Status:  jsonutil.StringAt(m, "status"),
		}
		if val, ok := jsonutil.ValueAt(m, "score"); ok {
			if f, isNum := val.(float64); isNum {
				a.Score = f
				a.Graded = true
			}
		} else if val, ok := jsonutil.ValueAt(m, "grade"); ok {
			if f, isNum := val.(float64); isNum {
				a.Score = f
				a.Graded = true
			}
		}
		out = append(out, a)
	}
	return out
}

func NormalizePayments(raw json.RawMessage) []Payment {
	items := jsonutil.UnwrapList(raw)
	out := make([]Payment, 0, len(items))
	for _, m := range items {
		out = append(out, Payment{
			ID:          jsonutil.StringAt(m, "_id", "id"),
			Amount:      jsonutil.NumberAt(m, "amount", "total"),
			Currency:    jsonutil.StringAt(m, "currency"),
			Status:      jsonutil.StringAt(m, "status"),
			Description: jsonutil.StringAt(m, "description", "classId.subject"),
			CreatedAt:   jsonutil.StringAt(m, "createdAt", "date"),
		})
	}
	return out
}

func NormalizeMessages(raw json.RawMessage) []Message {
	items := jsonutil.UnwrapList(raw)
	out := make([]Message, 0, len(items))
	for _, m := range items {
		out = append(out, Message{
			ID:         jsonutil.StringAt(m, "_id", "id"),
			SenderName: personName(m, "senderId", "sender"),
			Preview:    jsonutil.StringAt(m, "content", "text", "body"),
			SentAt:     jsonutil.StringAt(m, "createdAt", "sentAt"),
			Read:       jsonutil.BoolAt(m, "read", "isRead"),
		})
	}
	return out
}

// personName resolves a display name from a populated user reference. For each
// base key it tries base.firstName, then base.profile.firstName, then a plain
// string fallback under baseName.
func personName(m map[string]interface{}, bases ...string) string {
	for _, base := range bases {
		first := jsonutil.StringAt(m, base+".firstName", base+".profile.firstName")
		last := jsonutil.StringAt(m, base+".lastName", base+".profile.lastName")
		if name := strings.TrimSpace(first + " " + last); name != "" {
			return name
		}
		if name := jsonutil.StringAt(m, base+"Name", base+".name"); name != "" {
			return name
		}
	}
	return ""
}

// computeStats derives the summary tiles from the normalized collections.
// Total spent counts completed payments only; pending and failed charges never
// inflate the figure.
func computeStats(vm *ViewModel) Stats {
	var stats Stats

	for _, msg := range vm.Messages {
		if !msg.Read {
			stats.UnreadMessages++
		}
	}

	for _, p := range vm.Payments {
		if p.Status == "completed" {
			stats.TotalSpent += p.Amount
		}
	}

	graded := 0
	sum := 0.0
	for _, a := range vm.Assignments {
		if a.Graded {
			graded++
			sum += a.Score
		}
	}
	if graded > 0 {
		stats.AverageScore = sum / float64(graded)
	}

	for _, c := range vm.Classes {
		if c.Status == "scheduled" || c.Status == "upcoming" {
			stats.UpcomingClasses++
		}
	}
	return stats
}
