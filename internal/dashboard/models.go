// internal/dashboard/models.go
package dashboard

// Canonical dashboard view structs. Every field is always present with a safe
// zero value; rendering code never checks for nil or missing keys.

type ProfileView struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl"`
}

type Class struct {
	ID              string `json:"id"`
	Subject         string `json:"subject"`
	TutorName       string `json:"tutorName"`
	StudentName     string `json:"studentName"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	MeetingLink     string `json:"meetingLink"`
}

type Assignment struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Subject string  `json:"subject"`
	DueDate string  `json:"dueDate"`
	Status  string  `json:"status"`
	Score   float64 `json:"score"`
	Graded  bool    `json:"graded"`
}

type Payment struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"createdAt"`
}

type Message struct {
	ID         string `json:"id"`
	SenderName string `json:"senderName"`
	Preview    string `json:"preview"`
	SentAt     string `json:"sentAt"`
	Read       bool   `json:"read"`
}

// Stats are computed locally from the normalized collections, never trusted
// from the server.
type Stats struct {
	UnreadMessages  int     `json:"unreadMessages"`
	TotalSpent      float64 `json:"totalSpent"`
	AverageScore    float64 `json:"averageScore"`
	UpcomingClasses int     `json:"upcomingClasses"`
}

// ViewModel is everything one dashboard render needs. Errors maps a resource
// name ("classes", "payments", ...) to the user-facing message for the section
// that failed to load; sections without an entry loaded fine.
type ViewModel struct {
	Role        string            `json:"role"`
	Profile     ProfileView       `json:"profile"`
	Classes     []Class           `json:"classes"`
	Assignments []Assignment      `json:"assignments"`
	Payments    []Payment         `json:"payments"`
	Messages    []Message         `json:"messages"`
	Stats       Stats             `json:"stats"`
	Errors      map[string]string `json:"errors,omitempty"`
}
