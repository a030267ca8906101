package sklearn

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"spam-detection-service/internal/core/domain"
)

const defaultTokenPattern = `(?u)\b\w\w+\b`

// unicodeEscapes are the class escapes whose scikit-learn (str pattern)
// meaning is Unicode-wide, while RE2's versions only cover ASCII.
var unicodeEscapes = map[byte]string{
	'w': `\p{L}\p{N}_`,
	'd': `\p{Nd}`,
	's': `\s\p{Z}\x{85}`,
}

// boundedWordPattern matches \b<word atoms>\b where the last atom is unbounded.
// A greedy leftmost match of such a body already starts and ends on word
// boundaries, so the anchors can be dropped.
var boundedWordPattern = regexp.MustCompile(`^\\b((?:\\w(?:\+|\{[1-9][0-9]*,\})?)*\\w(?:\+|\{[1-9][0-9]*,\}))\\b$`)

// Vectorizer turns raw text into the feature space a classifier was trained on.
// It is immutable after parsing and safe for concurrent use.
type Vectorizer struct {
	kind         string
	lowercase    bool
	stripAccents string
	tokenRe      *regexp.Regexp
	ngramMin     int
	ngramMax     int
	stopWords    map[string]struct{}
	vocabulary   map[string]int
	idf          []float64
	binary       bool
	sublinearTF  bool
	norm         string
}

// ParseVectorizer decodes and validates a vectorizer export.
func ParseVectorizer(r io.Reader) (*Vectorizer, error) {
	var a vectorizerArtifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: decode vectorizer: %w", domain.ErrArtifactInvalid, err)
	}
	v, err := newVectorizer(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrArtifactInvalid, err)
	}
	return v, nil
}

func newVectorizer(a vectorizerArtifact) (*Vectorizer, error) {
	v := &Vectorizer{
		kind:        a.Type,
		lowercase:   true,
		ngramMin:    1,
		ngramMax:    1,
		vocabulary:  a.Vocabulary,
		binary:      a.Binary,
		sublinearTF: a.SublinearTF,
		norm:        "l2",
	}

	useIDF := true
	switch a.Type {
	case TypeTfidfVectorizer:
		if a.UseIDF != nil {
			useIDF = *a.UseIDF
		}
		if a.Norm != nil {
			v.norm = strings.ToLower(*a.Norm)
		}
	case TypeCountVectorizer:
		useIDF = false
		v.sublinearTF = false
		v.norm = "none"
	default:
		return nil, fmt.Errorf("unsupported vectorizer type %q", a.Type)
	}

	if a.Analyzer != "" && a.Analyzer != "word" {
		return nil, fmt.Errorf("unsupported analyzer %q", a.Analyzer)
	}
	if a.Lowercase != nil {
		v.lowercase = *a.Lowercase
	}

	if a.StripAccents != nil {
		switch *a.StripAccents {
		case "", "unicode", "ascii":
			v.stripAccents = *a.StripAccents
		default:
			return nil, fmt.Errorf("unsupported strip_accents %q", *a.StripAccents)
		}
	}

	switch v.norm {
	case "l1", "l2":
	case "", "none", "null":
		v.norm = "none"
	default:
		return nil, fmt.Errorf("unsupported norm %q", v.norm)
	}

	pattern := defaultTokenPattern
	if a.TokenPattern != nil {
		pattern = *a.TokenPattern
	}
	re, err := compileTokenPattern(pattern)
	if err != nil {
		return nil, err
	}
	v.tokenRe = re

	if len(a.NgramRange) != 0 {
		if len(a.NgramRange) != 2 || a.NgramRange[0] < 1 || a.NgramRange[0] > a.NgramRange[1] {
			return nil, fmt.Errorf("invalid ngram_range %v", a.NgramRange)
		}
		v.ngramMin, v.ngramMax = a.NgramRange[0], a.NgramRange[1]
	}

	if len(a.StopWords) > 0 {
		v.stopWords = make(map[string]struct{}, len(a.StopWords))
		for _, w := range a.StopWords {
			v.stopWords[w] = struct{}{}
		}
	}

	if len(v.vocabulary) == 0 {
		return nil, errors.New("vocabulary is empty")
	}
	seen := make([]bool, len(v.vocabulary))
	for term, idx := range v.vocabulary {
		if idx < 0 || idx >= len(seen) || seen[idx] {
			return nil, fmt.Errorf("vocabulary term %q has invalid column %d", term, idx)
		}
		seen[idx] = true
	}

	if useIDF {
		if len(a.IDF) != len(v.vocabulary) {
			return nil, fmt.Errorf("idf has %d weights for %d vocabulary terms", len(a.IDF), len(v.vocabulary))
		}
		v.idf = a.IDF
	}

	return v, nil
}

// compileTokenPattern converts a scikit-learn token_pattern to Go. Class escapes
// are widened to Unicode; patterns that still need a Unicode word boundary, or
// that have more than one capture group, are rejected.
func compileTokenPattern(pattern string) (*regexp.Regexp, error) {
	src := strings.TrimPrefix(pattern, "(?u)")
	if m := boundedWordPattern.FindStringSubmatch(src); m != nil {
		src = m[1]
	}
	translated, err := unicodeClasses(src)
	if err != nil {
		return nil, fmt.Errorf("token_pattern %q: %w", pattern, err)
	}
	re, err := regexp.Compile(translated)
	if err != nil {
		return nil, fmt.Errorf("compile token_pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() > 1 {
		return nil, fmt.Errorf("token_pattern %q has more than one capture group", pattern)
	}
	return re, nil
}

func unicodeClasses(src string) (string, error) {
	var b strings.Builder
	inSet := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src):
			i++
			e := src[i]
			switch e {
			case 'w', 'd', 's':
				if inSet {
					b.WriteString(unicodeEscapes[e])
				} else {
					b.WriteString("[" + unicodeEscapes[e] + "]")
				}
			case 'W', 'D', 'S':
				if inSet {
					return "", fmt.Errorf("\\%c inside a character set is not supported", e)
				}
				b.WriteString("[^" + unicodeEscapes[e+'a'-'A'] + "]")
			case 'b', 'B':
				if !inSet {
					return "", fmt.Errorf("word boundary \\%c is not supported here", e)
				}
				// backspace
				b.WriteString(`\x08`)
			default:
				b.WriteByte(c)
				b.WriteByte(e)
			}
		case c == '[' && !inSet:
			inSet = true
			b.WriteByte(c)
			if i+1 < len(src) && src[i+1] == '^' {
				i++
				b.WriteByte(src[i])
			}
			if i+1 < len(src) && src[i+1] == ']' {
				i++
				b.WriteByte(src[i])
			}
		case c == ']' && inSet:
			inSet = false
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// Dim is the width of the feature space.
func (v *Vectorizer) Dim() int {
	return len(v.vocabulary)
}

func (v *Vectorizer) Transform(text string) domain.FeatureVector {
	counts := make(map[int]float64)
	for _, term := range v.analyze(text) {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	fv := domain.FeatureVector{
		Dim:     v.Dim(),
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		fv.Indices = append(fv.Indices, idx)
	}
	sort.Ints(fv.Indices)

	for _, idx := range fv.Indices {
		tf := counts[idx]
		if v.binary {
			tf = 1
		}
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		if v.idf != nil {
			tf *= v.idf[idx]
		}
		fv.Values = append(fv.Values, tf)
	}

	normalize(fv.Values, v.norm)
	return fv
}

// analyze mirrors scikit-learn's word analyzer: preprocess, tokenize, drop
// stop words, then expand to n-grams.
func (v *Vectorizer) analyze(text string) []string {
	if v.lowercase {
		text = strings.ToLower(text)
	}
	switch v.stripAccents {
	case "unicode":
		text = stripAccents(text, runes.In(unicode.Mn))
	case "ascii":
		text = stripAccents(text, runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII }))
	}

	tokens := v.tokenize(text)
	if v.stopWords != nil {
		kept := tokens[:0]
		for _, t := range tokens {
			if _, stop := v.stopWords[t]; !stop {
				kept = append(kept, t)
			}
		}
		tokens = kept
	}

	return ngrams(tokens, v.ngramMin, v.ngramMax)
}

func (v *Vectorizer) tokenize(text string) []string {
	if v.tokenRe.NumSubexp() == 0 {
		return v.tokenRe.FindAllString(text, -1)
	}
	matches := v.tokenRe.FindAllStringSubmatch(text, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, m[1])
	}
	return tokens
}

func ngrams(tokens []string, minN, maxN int) []string {
	if maxN == 1 {
		return tokens
	}

	var out []string
	if minN == 1 {
		out = append(out, tokens...)
		minN = 2
	}
	for n := minN; n <= maxN && n <= len(tokens); n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

// stripAccents decomposes text (NFKD) and removes the runes in drop. A fresh
// transformer is built per call because transform.Chain keeps internal state.
func stripAccents(text string, drop runes.Set) string {
	t := transform.Chain(norm.NFKD, runes.Remove(drop))
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

func normalize(values []float64, kind string) {
	var total float64
	switch kind {
	case "l2":
		for _, x := range values {
			total += x * x
		}
		total = math.Sqrt(total)
	case "l1":
		for _, x := range values {
			total += math.Abs(x)
		}
	default:
		return
	}
	if total == 0 {
		return
	}
	for i := range values {
		values[i] /= total
	}
}
