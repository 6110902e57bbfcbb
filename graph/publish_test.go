package graph

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/vocabulary"
)

func TestTermTriples(t *testing.T) {
	onto := ontology.New()
	term := onto.CreateTerm("GO:0000001")
	require.NoError(t, term.SetName("mitochondrion inheritance"))
	require.NoError(t, term.SetNamespace("biological_process"))
	require.NoError(t, term.SetDefinition(&ontology.Definition{Text: "The distribution of mitochondria."}))
	require.NoError(t, term.SetObsolete(true))
	onto.AddRelationship("GO:0000001", vocabulary.IsA, "GO:0000002")

	triples, err := TermTriples(term, time.Now())
	require.NoError(t, err)

	byPredicate := make(map[string]any)
	for _, triple := range triples {
		assert.Equal(t, TermEntityID("GO:0000001"), triple.Subject)
		assert.Equal(t, tripleSource, triple.Source)
		byPredicate[triple.Predicate] = triple.Object
	}

	assert.Equal(t, "mitochondrion inheritance", byPredicate[PredicateTermName])
	assert.Equal(t, "biological_process", byPredicate[PredicateTermNamespace])
	assert.Equal(t, "The distribution of mitochondria.", byPredicate[PredicateTermDefinition])
	assert.Equal(t, true, byPredicate[PredicateTermObsolete])
	assert.Equal(t, TermEntityID("GO:0000002"), byPredicate[PredicateTermIsA])
}

func TestTermTriplesStaleHandle(t *testing.T) {
	onto := ontology.New()
	term := onto.CreateTerm("GO:0000001")
	onto.Discard()

	_, err := TermTriples(term, time.Now())
	assert.ErrorIs(t, err, ontology.ErrStaleHandle)
}

func TestPublishOntologyNilClient(t *testing.T) {
	onto := ontology.New()
	onto.CreateTerm("GO:0000001")

	assert.NoError(t, PublishOntology(context.Background(), nil, onto))
}

func TestEntityPayloadValidate(t *testing.T) {
	payload := &EntityPayload{}
	assert.Error(t, payload.Validate())

	payload.EntityID_ = TermEntityID("GO:0000001")
	assert.NoError(t, payload.Validate())
}

func TestTermPayloadWireFormat(t *testing.T) {
	onto := ontology.New()
	term := onto.CreateTerm("GO:0000001")
	require.NoError(t, term.SetName("mitochondrion inheritance"))

	payload, err := TermPayload(term, time.Now())
	require.NoError(t, err)
	require.NoError(t, payload.Validate())
	assert.Equal(t, EntityType, payload.Schema())

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded EntityPayload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, TermEntityID("GO:0000001"), decoded.EntityID())
	require.Len(t, decoded.Triples(), 1)
	assert.Equal(t, PredicateTermName, decoded.Triples()[0].Predicate)
}
