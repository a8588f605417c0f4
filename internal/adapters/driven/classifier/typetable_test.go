package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/namedrop/internal/core/domain"
)

func annotationWithTypes(types ...string) domain.ResolvedAnnotation {
	return domain.ResolvedAnnotation{
		RawAnnotation: domain.RawAnnotation{URI: "http://dbpedia.org/resource/X", Types: types},
	}
}

func TestTypeTable_Classify(t *testing.T) {
	c := NewTypeTable(domain.DefaultTypes())
	ctx := context.Background()

	tests := []struct {
		name    string
		types   []string
		want    domain.NameType
		wantErr bool
	}{
		{"person", []string{"DBpedia:Person"}, "persName", false},
		{"first known type wins", []string{"Http://xmlns.com/foaf/0.1/Person", "Schema:Place", "DBpedia:Person"}, "placeName", false},
		{"organisation", []string{"DBpedia:Organisation"}, "orgName", false},
		{"unknown", []string{"DBpedia:Film"}, domain.Untyped, true},
		{"no types", nil, domain.Untyped, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify(ctx, annotationWithTypes(tt.types...))
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnclassified)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewTypeTable_IgnoresEmptyNameTypes(t *testing.T) {
	c := NewTypeTable(map[string]domain.NameType{"DBpedia:Person": ""})

	_, err := c.Classify(context.Background(), annotationWithTypes("DBpedia:Person"))

	assert.ErrorIs(t, err, domain.ErrUnclassified)
}

func TestNewTypeTable_CopiesInput(t *testing.T) {
	types := map[string]domain.NameType{"Schema:Event": "eventName"}
	c := NewTypeTable(types)
	types["Schema:Event"] = "changed"

	got, err := c.Classify(context.Background(), annotationWithTypes("Schema:Event"))

	assert.NoError(t, err)
	assert.Equal(t, domain.NameType("eventName"), got)
}
