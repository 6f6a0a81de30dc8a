package generator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/seedforge/seedforge/internal/schema"
	"github.com/seedforge/seedforge/pkg/types"
)

const randomCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// EnumFallback is emitted for enum fields that have no enum list.
const EnumFallback = "unknown"

// Fixed pools for synthesized values. Email names and domains are internal
// on purpose: email generation never consults a template data pool.
var (
	emailFirstNames = []string{
		"james", "maria", "wei", "aisha", "carlos", "yuki", "lena", "omar",
		"nina", "pavel", "sofia", "derek",
	}
	emailLastNames = []string{
		"smith", "garcia", "chen", "okafor", "silva", "tanaka", "novak",
		"haddad", "kim", "fischer",
	}
	emailDomains = []string{
		"example.com", "testmail.org", "fixture.dev", "mailbox.net", "sample.io",
	}

	urlProtocols = []string{"https", "http"}
	urlDomains   = []string{
		"example.com", "acme-widgets.test", "fixture.dev", "demosite.org", "sample.io",
	}
	urlPaths = []string{
		"/", "/home", "/products", "/about", "/blog", "/contact", "/docs", "/pricing",
	}

	loremWords = []string{
		"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
		"elit", "sed", "do", "eiusmod", "tempor", "incididunt", "labore",
		"dolore", "magna", "aliqua", "enim", "minim", "veniam", "quis",
		"nostrud", "exercitation", "ullamco", "laboris", "nisi", "aliquip",
		"commodo", "consequat",
	}

	variationSuffixes = []string{"_test", "_demo", "_sample", "_v2", "_new"}
)

// scalarValue produces one value for a scalar (or unknown) type tag, using
// the field's constraints, enum list and data pool.
func (g *Generator) scalarValue(desc schema.Descriptor, cons types.FieldConstraints, enum, pool []string, variations bool) (interface{}, error) {
	tag := desc.Tag
	if desc.Kind == schema.KindUnknown {
		// Unrecognized tags generate like an enum when a list exists,
		// otherwise like a string. Forgiving of template typos; the data
		// just looks generic.
		if len(enum) > 0 {
			tag = schema.TagEnum
		} else {
			tag = schema.TagString
		}
	}

	switch tag {
	case schema.TagString:
		return g.stringValue(cons, pool, variations)
	case schema.TagNumber:
		return g.numberValue(cons), nil
	case schema.TagBoolean:
		return g.rng.Bool(), nil
	case schema.TagEmail:
		return g.emailValue()
	case schema.TagPhone:
		return g.phoneValue(), nil
	case schema.TagDate:
		return g.dateValue(cons), nil
	case schema.TagDatetime:
		return g.datetimeValue(), nil
	case schema.TagURL:
		return g.urlValue()
	case schema.TagText:
		return g.textValue(cons, pool)
	case schema.TagEnum:
		return g.enumValue(enum)
	case schema.TagUUID:
		return g.uuidValue()
	default:
		// Scalar tags are a closed set; Decode routes everything else to
		// KindUnknown, handled above.
		return nil, fmt.Errorf("unhandled type tag %q", tag)
	}
}

func (g *Generator) stringValue(cons types.FieldConstraints, pool []string, variations bool) (string, error) {
	if len(pool) > 0 {
		value, err := g.rng.Choice(pool)
		if err != nil {
			return "", err
		}
		if variations {
			value = g.applyVariation(value)
		}
		return value, nil
	}

	minLen, maxLen := 3, 20
	if cons.MinLength != nil {
		minLen = *cons.MinLength
	}
	if cons.MaxLength != nil {
		maxLen = *cons.MaxLength
	}
	length := g.rng.IntBetween(minLen, maxLen)
	return g.rng.StringOf(length, randomCharset)
}

// applyVariation mutates a pooled value so repeated picks do not all look
// identical. The checks are sequential Bernoulli draws, not a weighted
// three-way split: digits ~30%, suffix ~14%, unchanged ~56%. The structure
// is load-bearing for reproducibility against existing seeds.
func (g *Generator) applyVariation(value string) string {
	if g.rng.Next() < 0.3 {
		return value + strconv.Itoa(g.rng.IntBetween(1, 999))
	}
	if g.rng.Next() < 0.2 {
		suffix, err := g.rng.Choice(variationSuffixes)
		if err != nil {
			return value
		}
		return value + suffix
	}
	return value
}

func (g *Generator) numberValue(cons types.FieldConstraints) float64 {
	min, max := 0.0, 100.0
	if cons.Min != nil {
		min = *cons.Min
	}
	if cons.Max != nil {
		max = *cons.Max
	}

	v := g.rng.Next()*(max-min) + min

	if cons.Decimal != nil && *cons.Decimal > 0 {
		factor := math.Pow(10, float64(*cons.Decimal))
		return math.Round(v*factor) / factor
	}
	return math.Floor(v)
}

func (g *Generator) emailValue() (string, error) {
	first, err := g.rng.Choice(emailFirstNames)
	if err != nil {
		return "", err
	}
	last, err := g.rng.Choice(emailLastNames)
	if err != nil {
		return "", err
	}
	n := g.rng.IntBetween(1, 999)
	domain, err := g.rng.Choice(emailDomains)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s.%s%d@%s", first, last, n, domain), nil
}

// phoneValue produces a US-format number: exchange and area code avoid the
// reserved 0xx/1xx blocks.
func (g *Generator) phoneValue() string {
	area := g.rng.IntBetween(200, 999)
	exchange := g.rng.IntBetween(200, 999)
	line := g.rng.IntBetween(1000, 9999)
	return fmt.Sprintf("(%03d) %03d-%04d", area, exchange, line)
}

func (g *Generator) dateValue(cons types.FieldConstraints) string {
	minAge, maxAge := 0, 100
	if cons.MinAge != nil {
		minAge = *cons.MinAge
	}
	if cons.MaxAge != nil {
		maxAge = *cons.MaxAge
	}

	now := time.Now().UTC()
	earliest := now.AddDate(-maxAge, 0, 0)
	latest := now.AddDate(-minAge, 0, 0)

	span := latest.Unix() - earliest.Unix()
	offset := int64(g.rng.Next() * float64(span))
	return time.Unix(earliest.Unix()+offset, 0).UTC().Format("2006-01-02")
}

func (g *Generator) datetimeValue() string {
	now := time.Now().UTC()
	earliest := now.AddDate(-1, 0, 0)
	latest := now.AddDate(0, 0, 30)

	span := latest.Unix() - earliest.Unix()
	offset := int64(g.rng.Next() * float64(span))
	return time.Unix(earliest.Unix()+offset, 0).UTC().Format(time.RFC3339)
}

func (g *Generator) urlValue() (string, error) {
	protocol, err := g.rng.Choice(urlProtocols)
	if err != nil {
		return "", err
	}
	domain, err := g.rng.Choice(urlDomains)
	if err != nil {
		return "", err
	}
	path, err := g.rng.Choice(urlPaths)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s://%s%s", protocol, domain, path), nil
}

// textValue builds capitalized, period-terminated pseudo-Latin sentences
// until the text reaches a target length drawn from the length constraints.
func (g *Generator) textValue(cons types.FieldConstraints, pool []string) (string, error) {
	if len(pool) > 0 {
		return g.rng.Choice(pool)
	}

	minLen, maxLen := 50, 500
	if cons.MinLength != nil {
		minLen = *cons.MinLength
	}
	if cons.MaxLength != nil {
		maxLen = *cons.MaxLength
	}
	target := g.rng.IntBetween(minLen, maxLen)

	var b strings.Builder
	for b.Len() < target {
		wordCount := g.rng.IntBetween(4, 12)
		words := make([]string, wordCount)
		for i := range words {
			w, err := g.rng.Choice(loremWords)
			if err != nil {
				return "", err
			}
			words[i] = w
		}
		sentence := strings.Join(words, " ")
		sentence = strings.ToUpper(sentence[:1]) + sentence[1:]

		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sentence)
		b.WriteByte('.')
	}
	return b.String(), nil
}

func (g *Generator) enumValue(enum []string) (string, error) {
	if len(enum) == 0 {
		return EnumFallback, nil
	}
	return g.rng.Choice(enum)
}

// uuidValue produces an RFC 4122 v4 UUID from the seeded source, so UUIDs
// are reproducible like every other field.
func (g *Generator) uuidValue() (string, error) {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return "", fmt.Errorf("failed to generate uuid: %w", err)
	}
	return id.String(), nil
}
