package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/crave-social/crave/internal/domain"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func ValidateRegister(username, email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	username = strings.TrimSpace(username)
	if username == "" {
		errs.Add("username", "Username is required")
	} else if len(username) < 3 || len(username) > 50 {
		errs.Add("username", "Username must be between 3 and 50 characters")
	} else if !usernameRegex.MatchString(username) {
		errs.Add("username", "Username may only contain letters, numbers, underscores and dashes")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Email is not valid")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 || len(password) > 100 {
		errs.Add("password", "Password must be between 6 and 100 characters")
	}

	return errs
}

func ValidateLogin(username, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(username) == "" {
		errs.Add("username", "Username is required")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateVideo(title, recipe, visibility string) ValidationErrors {
	errs := make(ValidationErrors)

	title = strings.TrimSpace(title)
	if title == "" {
		errs.Add("title", "Title is required")
	} else if len(title) > 200 {
		errs.Add("title", "Title must be at most 200 characters")
	}

	if len(recipe) > 5000 {
		errs.Add("recipe", "Recipe must be at most 5000 characters")
	}

	if !domain.Visibility(visibility).Valid() {
		errs.Add("visibility", fmt.Sprintf("Visibility must be 'public' or 'private', got %q", visibility))
	}

	return errs
}
