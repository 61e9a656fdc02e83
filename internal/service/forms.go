package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"frontdesk/internal/domain"
)

// Формы панелей. Теги binding проверяются и gin при разборе запроса,
// и сервисом, когда форма приходит не из HTTP.

type LoginForm struct {
	Username string `form:"username" json:"username" binding:"required,max=64"`
	Password string `form:"password" json:"password" binding:"required"`
}

type TableForm struct {
	Number   int `form:"number" json:"number" binding:"required,gt=0"`
	Capacity int `form:"capacity" json:"capacity" binding:"required,gt=0,lte=50"`
}

type MenuItemForm struct {
	Name        string  `form:"name" json:"name" binding:"required,max=100"`
	Description string  `form:"description" json:"description" binding:"max=500"`
	Price       float64 `form:"price" json:"price" binding:"required,gt=0"`
	Category    string  `form:"category" json:"category" binding:"required,oneof=food drink dessert"`
	DrinkType   string  `form:"drink_type" json:"drink_type" binding:"omitempty,oneof=alcoholic non_alcoholic hot"`
	PrepTime    int     `form:"prep_time" json:"prep_time" binding:"gte=0,lte=240"`
	Difficulty  string  `form:"difficulty" json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Available   bool    `form:"available" json:"available"`
}

// check covers rules the tags cannot express.
func (f MenuItemForm) check() error {
	if domain.Category(f.Category) == domain.CategoryDrink && f.DrinkType == "" {
		return fieldError("drink_type", "is required for drinks")
	}
	if domain.Category(f.Category) != domain.CategoryDrink && f.DrinkType != "" {
		return fieldError("drink_type", "is only allowed for drinks")
	}
	return nil
}

func (f MenuItemForm) input() domain.MenuItemInput {
	in := domain.MenuItemInput{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Price:       f.Price,
		Category:    domain.Category(f.Category),
		DrinkType:   domain.DrinkType(f.DrinkType),
		Difficulty:  domain.Difficulty(f.Difficulty),
	}
	if f.PrepTime > 0 {
		pt := f.PrepTime
		in.PrepTime = &pt
	}
	avail := f.Available
	in.Available = &avail
	return in
}

type CartForm struct {
	MenuItemID int64 `form:"menu_item_id" json:"menu_item_id" binding:"required,gt=0"`
	Quantity   int   `form:"quantity" json:"quantity" binding:"required,gt=0,lte=20"`
}

type ItemStatusForm struct {
	Status string `form:"status" json:"status" binding:"required,oneof=pending preparing ready delivered"`
}

type CloseBillForm struct {
	PaymentMethod string `form:"payment_method" json:"payment_method" binding:"required,oneof=cash card"`
}

// MenuQuery параметры витрины меню для гостя
type MenuQuery struct {
	Category string   `form:"category" binding:"omitempty,oneof=food drink dessert"`
	Q        string   `form:"q" binding:"max=100"`
	Sort     string   `form:"sort" binding:"omitempty,oneof=name price_asc price_desc"`
	MaxPrice *float64 `form:"max_price" binding:"omitempty,gt=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

// Validate runs the binding tags of a form and its extra checks.
func Validate(form any) error {
	if err := validate.Struct(form); err != nil {
		return err
	}
	if c, ok := form.(interface{ check() error }); ok {
		return c.check()
	}
	return nil
}

// FieldError ошибка проверки одного поля формы
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + " " + e.Message }

func (e *FieldError) Unwrap() error { return ErrInvalidInput }

func fieldError(field, msg string) error { return &FieldError{Field: field, Message: msg} }

// Describe turns validation errors into a message fit for a toast.
// Other errors are returned as their text.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describeField(fe))
	}
	return strings.Join(parts, "; ")
}

func describeField(fe validator.FieldError) string {
	name := snake(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "gt":
		if fe.Param() == "0" {
			return name + " must be positive"
		}
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s is too long (max %s)", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return name + " is invalid"
}

// snake converts a Go field name like MenuItemID to menu_item_id.
func snake(s string) string {
	var b strings.Builder
	rs := []rune(s)
	for i, r := range rs {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := rs[i-1] >= 'a' && rs[i-1] <= 'z'
			nextLower := i+1 < len(rs) && rs[i+1] >= 'a' && rs[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsValidation reports whether err came from form validation.
func IsValidation(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs) || errors.Is(err, ErrInvalidInput)
}
