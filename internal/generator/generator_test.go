package generator

import (
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedforge/seedforge/internal/schema"
	"github.com/seedforge/seedforge/pkg/types"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	uuidPattern  = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
)

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	registry, err := schema.NewRegistry()
	require.NoError(t, err)
	return registry
}

// registerTemplate decodes a template document built in code and adds it to
// the registry under name.
func registerTemplate(t *testing.T, registry *schema.Registry, name string, doc types.TemplateDocument) {
	t.Helper()
	tpl, err := schema.Decode(name, &doc)
	require.NoError(t, err)
	require.NoError(t, registry.Register(tpl))
}

func seedOpts(seed int64, opts types.GenerateOptions) types.GenerateOptions {
	opts.Seed = &seed
	return opts
}

func TestBatchDeterminism(t *testing.T) {
	registry := testRegistry(t)
	// Built without date/datetime fields so the comparison cannot race a
	// wall-clock second boundary between the two runs.
	registerTemplate(t, registry, "account", types.TemplateDocument{
		Schema: json.RawMessage(`{"id":"uuid","owner":"string","email":"email","balance":"number","active":"boolean","labels":["string"],"contact":{"phone":"phone","site":"url"}}`),
		Data:   map[string][]string{"owner": {"ace", "birdie", "comet"}},
	})

	opts := seedOpts(12345, types.GenerateOptions{Count: 5})

	first, err := Run(registry, nil, "account", opts)
	require.NoError(t, err)
	second, err := Run(registry, nil, "account", opts)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first.Records)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second.Records)
	require.NoError(t, err)

	assert.Equal(t, string(firstJSON), string(secondJSON))
	assert.Equal(t, int64(12345), first.Seed)
}

func TestBatchCountInvariant(t *testing.T) {
	registry := testRegistry(t)

	for _, count := range []int{1, 3, 10} {
		result, err := Run(registry, nil, "user", seedOpts(1, types.GenerateOptions{Count: count}))
		require.NoError(t, err)
		assert.Len(t, result.Records, count)
	}

	// Zero and negative counts fall back to a single record.
	result, err := Run(registry, nil, "user", seedOpts(1, types.GenerateOptions{}))
	require.NoError(t, err)
	assert.Len(t, result.Records, 1)
}

func TestRecordShapeMatchesSchema(t *testing.T) {
	registry := testRegistry(t)

	result, err := Run(registry, nil, "user", seedOpts(9, types.GenerateOptions{}))
	require.NoError(t, err)

	record := result.Records[0]
	assert.Equal(t, []string{
		"id", "username", "email", "firstName", "lastName", "age", "isActive",
		"phone", "birthDate", "website", "bio", "role", "address", "tags", "createdAt",
	}, record.Keys())

	address, ok := record.Get("address")
	require.True(t, ok)
	sub, ok := address.(types.Record)
	require.True(t, ok, "nested field should be a record")
	assert.Equal(t, []string{"street", "city", "state", "country", "zipCode"}, sub.Keys())
}

func TestUserScenario(t *testing.T) {
	registry := testRegistry(t)

	result, err := Run(registry, nil, "user", seedOpts(42, types.GenerateOptions{Count: 5, Unique: true}))
	require.NoError(t, err)
	require.Len(t, result.Records, 5)

	emails := make(map[string]bool)
	for _, record := range result.Records {
		email, ok := record.Get("email")
		require.True(t, ok)
		assert.Regexp(t, emailPattern, email)
		emails[email.(string)] = true

		address, _ := record.Get("address")
		sub := address.(types.Record)
		for _, field := range []string{"city", "state", "country"} {
			v, ok := sub.Get(field)
			require.True(t, ok)
			assert.IsType(t, "", v)
		}
	}
	assert.Len(t, emails, 5, "expected distinct emails")
}

func TestProductScenario(t *testing.T) {
	registry := testRegistry(t)

	result, err := Run(registry, nil, "product", seedOpts(7, types.GenerateOptions{Count: 20}))
	require.NoError(t, err)

	for _, record := range result.Records {
		price, ok := record.Get("price")
		require.True(t, ok)
		p := price.(float64)
		assert.GreaterOrEqual(t, p, 0.01)
		assert.LessOrEqual(t, p, 10000.0)
		assert.Equal(t, p, roundTo(p, 2), "price should have at most 2 decimal places")

		rating, _ := record.Get("rating")
		r := rating.(float64)
		assert.GreaterOrEqual(t, r, 1.0)
		assert.LessOrEqual(t, r, 5.0)
		assert.Equal(t, r, roundTo(r, 1), "rating should have at most 1 decimal place")
	}
}

func TestNumericBounds(t *testing.T) {
	registry := testRegistry(t)
	registerTemplate(t, registry, "bounded", types.TemplateDocument{
		Schema: json.RawMessage(`{"v":"number"}`),
		Constraints: map[string]types.FieldConstraints{
			"v": {Min: floatPtr(-5), Max: floatPtr(5)},
		},
	})

	result, err := Run(registry, nil, "bounded", seedOpts(3, types.GenerateOptions{Count: 100}))
	require.NoError(t, err)

	for _, record := range result.Records {
		v, _ := record.Get("v")
		f := v.(float64)
		assert.GreaterOrEqual(t, f, -5.0)
		assert.LessOrEqual(t, f, 5.0)
		assert.Equal(t, f, float64(int64(f)), "without decimal places, values are floored to integers")
	}
}

func TestScalarFormats(t *testing.T) {
	registry := testRegistry(t)
	registerTemplate(t, registry, "formats", types.TemplateDocument{
		Schema: json.RawMessage(`{"id":"uuid","mail":"email","tel":"phone","born":"date","at":"datetime","link":"url"}`),
	})

	result, err := Run(registry, nil, "formats", seedOpts(77, types.GenerateOptions{Count: 10}))
	require.NoError(t, err)

	for _, record := range result.Records {
		id, _ := record.Get("id")
		assert.Regexp(t, uuidPattern, id)

		mail, _ := record.Get("mail")
		assert.Regexp(t, emailPattern, mail)

		tel, _ := record.Get("tel")
		assert.Regexp(t, phonePattern, tel)

		born, _ := record.Get("born")
		assert.Regexp(t, datePattern, born)

		at, _ := record.Get("at")
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`, at)

		link, _ := record.Get("link")
		assert.Regexp(t, `^https?://`, link)
	}
}

func TestEnumGeneration(t *testing.T) {
	registry := testRegistry(t)
	registerTemplate(t, registry, "enums", types.TemplateDocument{
		Schema: json.RawMessage(`{"picked":"enum","missing":"enum"}`),
		Enums:  map[string][]string{"picked": {"red", "green", "blue"}},
	})

	result, err := Run(registry, nil, "enums", seedOpts(5, types.GenerateOptions{Count: 30}))
	require.NoError(t, err)

	for _, record := range result.Records {
		picked, _ := record.Get("picked")
		assert.Contains(t, []string{"red", "green", "blue"}, picked)

		missing, _ := record.Get("missing")
		assert.Equal(t, EnumFallback, missing, "enum without a list falls back to the sentinel")
	}
}

func TestUnknownTagFallback(t *testing.T) {
	registry := testRegistry(t)
	registerTemplate(t, registry, "typos", types.TemplateDocument{
		Schema: json.RawMessage(`{"asString":"strnig","asEnum":"whatever"}`),
		Enums:  map[string][]string{"asEnum": {"only"}},
	})

	result, err := Run(registry, nil, "typos", seedOpts(1, types.GenerateOptions{}))
	require.NoError(t, err)

	record := result.Records[0]
	asString, _ := record.Get("asString")
	s, ok := asString.(string)
	require.True(t, ok)
	assert.NotEmpty(t, s)

	asEnum, _ := record.Get("asEnum")
	assert.Equal(t, "only", asEnum, "unknown tag with an enum list generates as enum")
}

func TestArrayLengths(t *testing.T) {
	registry := testRegistry(t)
	registerTemplate(t, registry, "arrays", types.TemplateDocument{
		Schema: json.RawMessage(`{"tags":["string"]}`),
	})

	result, err := Run(registry, nil, "arrays", seedOpts(8, types.GenerateOptions{Count: 50}))
	require.NoError(t, err)

	for _, record := range result.Records {
		tags, _ := record.Get("tags")
		items := tags.([]interface{})
		assert.GreaterOrEqual(t, len(items), 1)
		assert.LessOrEqual(t, len(items), 5)
	}
}

func TestStringPoolAndVariations(t *testing.T) {
	registry := testRegistry(t)
	registerTemplate(t, registry, "pooled", types.TemplateDocument{
		Schema: json.RawMessage(`{"name":"string"}`),
		Data:   map[string][]string{"name": {"alpha", "beta"}},
	})

	off := false
	result, err := Run(registry, nil, "pooled", seedOpts(6, types.GenerateOptions{Count: 20, Variations: &off}))
	require.NoError(t, err)
	for _, record := range result.Records {
		name, _ := record.Get("name")
		assert.Contains(t, []string{"alpha", "beta"}, name, "without variations, values come straight from the pool")
	}

	result, err = Run(registry, nil, "pooled", seedOpts(6, types.GenerateOptions{Count: 200}))
	require.NoError(t, err)
	mutated := false
	for _, record := range result.Records {
		name, _ := record.Get("name")
		s := name.(string)
		hasPrefix := len(s) >= 4 && (s[:4] == "alph" || s[:4] == "beta")
		assert.True(t, hasPrefix, "variations only append, got %q", s)
		if s != "alpha" && s != "beta" {
			mutated = true
		}
	}
	assert.True(t, mutated, "expected at least one varied value over 200 draws")
}

func TestStringLengthConstraints(t *testing.T) {
	registry := testRegistry(t)
	registerTemplate(t, registry, "sized", types.TemplateDocument{
		Schema: json.RawMessage(`{"code":"string"}`),
		Constraints: map[string]types.FieldConstraints{
			"code": {MinLength: intPtr(4), MaxLength: intPtr(6)},
		},
	})

	result, err := Run(registry, nil, "sized", seedOpts(2, types.GenerateOptions{Count: 50}))
	require.NoError(t, err)

	for _, record := range result.Records {
		code, _ := record.Get("code")
		s := code.(string)
		assert.GreaterOrEqual(t, len(s), 4)
		assert.LessOrEqual(t, len(s), 6)
	}
}

func TestUniqueBestEffort(t *testing.T) {
	registry := testRegistry(t)
	// A single-value space: the second unique slot can never succeed.
	registerTemplate(t, registry, "tiny", types.TemplateDocument{
		Schema: json.RawMessage(`{"status":"enum"}`),
		Enums:  map[string][]string{"status": {"fixed"}},
	})

	result, err := Run(registry, nil, "tiny", seedOpts(1, types.GenerateOptions{Count: 3, Unique: true}))
	require.NoError(t, err)

	assert.Len(t, result.Records, 3, "batch stays full length even when uniqueness is infeasible")
	assert.Equal(t, 2, result.Exhausted)
}

func TestUniqueDistinctRecords(t *testing.T) {
	registry := testRegistry(t)

	result, err := Run(registry, nil, "user", seedOpts(99, types.GenerateOptions{Count: 5, Unique: true}))
	require.NoError(t, err)

	keys := make(map[string]bool)
	for _, record := range result.Records {
		keys[record.CanonicalKey()] = true
	}
	assert.Len(t, keys, 5)
	assert.Zero(t, result.Exhausted)
}

func TestTemplateNotFound(t *testing.T) {
	registry := testRegistry(t)

	_, err := Run(registry, nil, "nonexistent", types.GenerateOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrTemplateNotFound))
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestGeneratorReuseContinuesSequence(t *testing.T) {
	registry := testRegistry(t)

	gen := New(registry, nil, 1234)
	first, err := gen.Batch("product", types.GenerateOptions{Count: 2})
	require.NoError(t, err)
	second, err := gen.Batch("product", types.GenerateOptions{Count: 2})
	require.NoError(t, err)

	assert.NotEqual(t, first.Records[0].CanonicalKey(), second.Records[0].CanonicalKey(),
		"a reused generator continues the sequence instead of resetting")
}

func roundTo(v float64, places int) float64 {
	factor := 1.0
	for i := 0; i < places; i++ {
		factor *= 10
	}
	return float64(int64(v*factor+0.5)) / factor
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
