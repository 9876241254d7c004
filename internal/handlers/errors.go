package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// fieldErrors collects per-field validation messages, serialized in the
// {"message": ..., "errors": {field: [msg]}} envelope the frontend expects.
type fieldErrors map[string][]string

func (fe fieldErrors) add(field, message string) {
	fe[field] = append(fe[field], message)
}

func validationFailed(c *gin.Context, fe fieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": "The given data was invalid.",
		"errors":  fe,
	})
}

// bindingErrors translates gin binding failures into field messages. Anything
// that is not a validator error (malformed JSON and friends) gets a single
// body-level message.
func bindingErrors(err error) fieldErrors {
	fe := fieldErrors{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.add("body", "The request body could not be parsed.")
		return fe
	}

	for _, v := range verrs {
		field := strings.ToLower(v.Field())
		switch v.Tag() {
		case "required":
			fe.add(field, fmt.Sprintf("The %s field is required.", field))
		case "email":
			fe.add(field, fmt.Sprintf("The %s must be a valid email address.", field))
		case "max":
			fe.add(field, fmt.Sprintf("The %s must not be greater than %s characters.", field, v.Param()))
		case "min":
			fe.add(field, fmt.Sprintf("The %s must be at least %s characters.", field, v.Param()))
		default:
			fe.add(field, fmt.Sprintf("The %s is invalid.", field))
		}
	}
	return fe
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"message": message})
}

// serverError logs the underlying cause and returns a generic message so
// internals never leak to the caller.
func serverError(c *gin.Context, err error, message string) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": message})
}
