package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupForm struct {
	Name  string  `json:"name"  validate:"required,max=10"`
	Email string  `json:"email" validate:"required,email"`
	Site  string  `json:"site"  validate:"nullable,url"`
	Role  string  `json:"role"  validate:"required,in=customer,admin"`
	Price float64 `json:"price" validate:"gte=0"`
	Count int     `json:"count" validate:"gte=0,lte=100"`
}

func valid() signupForm {
	return signupForm{
		Name:  "Sam",
		Email: "sam@example.com",
		Role:  "customer",
		Price: 10,
		Count: 5,
	}
}

func TestStructPasses(t *testing.T) {
	errs := Struct(valid())
	assert.False(t, HasErrors(errs))
}

func TestRequired(t *testing.T) {
	form := valid()
	form.Name = "   "

	errs := Struct(form)
	assert.Contains(t, errs, "name")
}

func TestEmail(t *testing.T) {
	form := valid()
	form.Email = "not-an-email"

	errs := Struct(form)
	assert.Contains(t, errs, "email")
}

func TestNullableSkipsEmptyField(t *testing.T) {
	form := valid()
	form.Site = ""
	assert.False(t, HasErrors(Struct(form)))

	form.Site = "ftp://nope"
	assert.Contains(t, Struct(form), "site")
}

func TestInWithMultipleValues(t *testing.T) {
	form := valid()
	form.Role = "admin"
	assert.False(t, HasErrors(Struct(form)))

	form.Role = "superuser"
	assert.Contains(t, Struct(form), "role")
}

func TestGteOnNumbers(t *testing.T) {
	form := valid()
	form.Price = -0.01

	errs := Struct(form)
	assert.Contains(t, errs, "price")
}

func TestLteOnNumbers(t *testing.T) {
	form := valid()
	form.Count = 101

	errs := Struct(form)
	assert.Contains(t, errs, "count")
}

func TestMaxOnStringLength(t *testing.T) {
	form := valid()
	form.Name = "a very long name indeed"

	errs := Struct(form)
	assert.Contains(t, errs, "name")
}

func TestFieldNamesComeFromJSONTags(t *testing.T) {
	type tagged struct {
		FullName string `json:"full_name" validate:"required"`
	}

	errs := Struct(tagged{})
	assert.Contains(t, errs, "full_name")
}

func TestSplitRulesKeepsInParamsTogether(t *testing.T) {
	rules := splitRules("required,in=customer,admin,max=50")
	assert.Equal(t, []string{"required", "in=customer,admin", "max=50"}, rules)
}
