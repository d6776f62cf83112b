package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/intern-dashboard/pkg/util/errorutil"
)

func TestLoad_CompilesEveryResource(t *testing.T) {
	v, err := Load()
	require.NoError(t, err)

	for _, name := range []string{User, Task, Evaluation, Domain, Company, Token} {
		assert.Contains(t, v.Resources(), name)
		assert.Contains(t, v.Resources(), ListOf(name))
	}
}

func TestValidate_Users(t *testing.T) {
	v := MustLoad()

	valid := `[
		{"id": 1, "fullName": "Ada Lovelace", "email": "ada@example.com", "role": "INTERN", "supervisorId": 7, "domain": null},
		{"id": "7", "fullName": "Grace Hopper", "email": "grace@example.com", "role": "SUPERVISOR"}
	]`
	assert.NoError(t, v.Validate(ListOf(User), []byte(valid)))

	err := v.Validate(ListOf(User), []byte(`[{"id": 1, "fullName": "X", "email": "x@example.com", "role": "OWNER"}]`))
	var schemaErr *apperrors.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "user[]", schemaErr.Resource)
	assert.NotEmpty(t, schemaErr.Problems)
}

func TestValidate_EvaluationScoreRange(t *testing.T) {
	v := MustLoad()

	ok := `{"id": 3, "internId": 1, "technicalScore": 8, "communicationScore": 6, "teamworkScore": 7, "submittedAt": "2024-05-01T10:00:00Z"}`
	assert.NoError(t, v.Validate(Evaluation, []byte(ok)))

	bad := `{"id": 3, "internId": 1, "technicalScore": 11, "communicationScore": 6, "teamworkScore": 7}`
	assert.Error(t, v.Validate(Evaluation, []byte(bad)))
}

func TestValidate_MalformedJSON(t *testing.T) {
	v := MustLoad()
	err := v.Validate(Company, []byte(`{"id":`))

	var schemaErr *apperrors.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Contains(t, schemaErr.Problems[0], "invalid JSON")
}

func TestValidate_UnknownResource(t *testing.T) {
	v := MustLoad()
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(v.Validate("invoice", []byte(`{}`)), &loadErr))
}

func TestValidate_TokenRequiresValue(t *testing.T) {
	v := MustLoad()
	assert.NoError(t, v.Validate(Token, []byte(`{"token":"a.b.c"}`)))
	assert.Error(t, v.Validate(Token, []byte(`{"token":""}`)))
	assert.Error(t, v.Validate(Token, []byte(`{}`)))
}
