package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_CoreFields(t *testing.T) {
	for _, name := range CoreFields() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, CoreField, Classify(name))
			assert.True(t, IsCoreField(name))
		})
	}
}

func TestClassify_CustomFields(t *testing.T) {
	tests := []string{
		"precio_estimado",
		"procedencia",
		"Titulo", // case-sensitive
		"titulo ",
		"",
		"zona_anterior",
	}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, CustomField, Classify(name))
		})
	}
}

func TestCoreFields_MatchesMembershipSet(t *testing.T) {
	names := CoreFields()
	assert.Len(t, names, len(coreFields))
	for _, name := range names {
		_, ok := coreFields[name]
		assert.True(t, ok, name)
	}
}

func TestSuggestedFields_AreCustom(t *testing.T) {
	for _, name := range SuggestedFields() {
		assert.Equal(t, CustomField, Classify(name), name)
	}
}

func TestFieldClass_String(t *testing.T) {
	assert.Equal(t, "core", CoreField.String())
	assert.Equal(t, "custom", CustomField.String())
}
