package remote

import "io"

// Health is a backend health report.
type Health struct {
	Status  string `json:"status"`
	DBState string `json:"dbState,omitempty"`
}

// User is a user identity returned by the backend.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse is a result of the successful login.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// Article is a raw article record.
type Article struct {
	ID       int    `json:"articleId"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

// DetailedArticle is an article with its text.
type DetailedArticle struct {
	Article
	Text     *string `json:"article_text"`
	Featured *bool   `json:"featured"`
}

// ArticleForm contains fields to create or update an article.
type ArticleForm struct {
	Title    string
	Summary  string
	Text     string
	Category string
	Date     string
	Featured bool
	// Image is required on create and optional on update.
	Image *Image
}

// Image is an image file to upload.
type Image struct {
	Name string
	Body io.Reader
}

// ContactSubmission is a message left through the contact form.
type ContactSubmission struct {
	ID        string  `json:"_id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
	IPAddress *string `json:"ipAddress"`
	UserAgent *string `json:"userAgent"`
}

// Pagination describes the page of a listing.
type Pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
}

// ContactSubmissions is a page of contact submissions.
type ContactSubmissions struct {
	Submissions []ContactSubmission `json:"submissions"`
	Pagination  Pagination          `json:"pagination"`
}

type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}
