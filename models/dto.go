package models

type RegisterRequest struct {
	Username string `form:"username" validate:"required,min=3,max=50"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	Name     string `form:"name" validate:"max=100"`
}

type LoginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// QuestionRequest carries the editable fields of a question form. Tags arrive as
// a single whitespace separated string.
type QuestionRequest struct {
	Title     string `form:"title" validate:"required,max=255"`
	Content   string `form:"content" validate:"required"`
	Sponsor   string `form:"sponsor"`
	Field     string `form:"field"`
	Applicant string `form:"applicant"`
	Period    string `form:"period"`
	Manager   string `form:"manager"`
	Tel       string `form:"tel"`
	Radio     string `form:"radio"`
	Tags      string `form:"tags"`
}

type CreateAnswerRequest struct {
	Content string `form:"content" validate:"required"`
}

type QuestionListParams struct {
	Page  int
	Limit int
	Term  string
}

// AnsweredPayload is sent to a question's author when someone answers it.
type AnsweredPayload struct {
	URL      string    `json:"url"`
	Question *Question `json:"question"`
}
