// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paraphrase

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type pair struct{ from, to string }

// synonyms is ordered: the academic and simple styles use a prefix of it.
var synonyms = []pair{
	{"is", "remains"}, {"are", "exist as"}, {"was", "proved to be"},
	{"were", "turned out to be"}, {"important", "vital"}, {"big", "substantial"},
	{"small", "minimal"}, {"good", "beneficial"}, {"bad", "detrimental"},
	{"help", "facilitate"}, {"use", "leverage"}, {"make", "generate"},
	{"get", "acquire"}, {"go", "advance"}, {"think", "consider"},
	{"know", "comprehend"}, {"way", "approach"}, {"thing", "item"},
	{"time", "duration"}, {"people", "individuals"}, {"work", "function"},
	{"can", "is able to"}, {"very", "extremely"}, {"really", "actually"},
	{"quite", "rather"}, {"just", "merely"}, {"also", "furthermore"},
	{"because", "since"}, {"before", "ahead of"}, {"after", "subsequent to"},
	{"need", "must have"}, {"show", "demonstrate"}, {"say", "state"},
	{"tell", "communicate"}, {"give", "bestow"}, {"take", "seize"},
	{"seem", "appear"}, {"let", "permit"}, {"put", "position"},
	{"have", "possess"}, {"do", "execute"}, {"see", "observe"},
	{"come", "arrive"}, {"being", "existing"}, {"becomes", "transforms into"},
	{"become", "transform into"}, {"came", "arrived"}, {"comes", "arrives"},
	{"making", "producing"}, {"made", "produced"}, {"takes", "requires"},
	{"took", "required"}, {"given", "provided"}, {"gives", "contributes"},
	{"gave", "contributed"}, {"having", "possessing"}, {"has", "contains"},
	{"had", "contained"}, {"doing", "executing"}, {"did", "executed"},
	{"done", "completed"}, {"seeing", "observing"}, {"seen", "observed"},
	{"saw", "observed"},
}

var contractions = []pair{
	{"don't", "do not"}, {"doesn't", "does not"}, {"didn't", "did not"},
	{"can't", "cannot"}, {"couldn't", "could not"}, {"won't", "will not"},
	{"wouldn't", "would not"}, {"isn't", "is not"}, {"aren't", "are not"},
	{"i'm", "I am"}, {"you're", "you are"}, {"he's", "he is"},
	{"she's", "she is"}, {"it's", "it is"}, {"we're", "we are"},
	{"they're", "they are"},
}

// formalContractions extends contractions for the formal style.
var formalContractions = append(append([]pair{}, contractions...),
	pair{"shouldn't", "should not"}, pair{"hasn't", "has not"},
	pair{"haven't", "have not"}, pair{"hadn't", "had not"},
	pair{"wasn't", "was not"}, pair{"weren't", "were not"},
	pair{"btw", "by the way"}, pair{"etc", "et cetera"},
)

var casualToAcademic = []pair{
	{"kinda", "somewhat"}, {"sorta", "rather"}, {"lots of", "numerous"},
	{"lot of", "numerous"}, {"stuff", "material"}, {"thing", "concept"},
	{"guys", "individuals"}, {"guy", "individual"}, {"wanna", "want to"},
	{"gonna", "going to"},
}

var formalToCasual = []pair{
	{"obtain", "get"}, {"utilize", "use"}, {"facilitate", "help"},
	{"moreover", "plus"}, {"furthermore", "also"}, {"subsequently", "then"},
	{"thereafter", "after that"}, {"nonetheless", "still"},
	{"notwithstanding", "despite"}, {"demonstrate", "show"},
	{"require", "need"}, {"acquire", "get"}, {"consider", "think about"},
}

// wordReplacer substitutes whole words case-insensitively in a single pass,
// so a replacement is never itself replaced. A capitalized word yields a
// capitalized replacement.
type wordReplacer struct {
	re    *regexp.Regexp
	table map[string]string
}

func newWordReplacer(pairs ...[]pair) *wordReplacer {
	table := make(map[string]string)
	var alts []string
	for _, ps := range pairs {
		for _, p := range ps {
			if _, dup := table[p.from]; dup {
				continue
			}
			table[p.from] = p.to
			alts = append(alts, regexp.QuoteMeta(p.from))
		}
	}
	return &wordReplacer{
		re:    regexp.MustCompile(`(?i)\b(` + strings.Join(alts, "|") + `)\b`),
		table: table,
	}
}

func (w *wordReplacer) replace(s string) string {
	return w.re.ReplaceAllStringFunc(s, func(match string) string {
		to, ok := w.table[strings.ToLower(match)]
		if !ok {
			return match
		}
		if r, _ := utf8.DecodeRuneInString(match); unicode.IsUpper(r) {
			return capitalize(to)
		}
		return to
	})
}

var (
	standardWords = newWordReplacer(synonyms)
	academicWords = newWordReplacer(contractions, casualToAcademic, synonyms[:20])
	formalWords   = newWordReplacer(formalContractions, synonyms)
	casualWords   = newWordReplacer(formalToCasual)
	simpleWords   = newWordReplacer(synonyms[:15])

	sentenceEnd = regexp.MustCompile(`[.!?]+\s+`)
	clauseBreak = regexp.MustCompile(`[.;!?]+`)
)

// Local rewrites text offline with word substitution and light sentence
// restructuring.
type Local struct{}

// Rewrite implements Rewriter. It never fails.
func (Local) Rewrite(_ context.Context, text string, style Style) (string, error) {
	switch style {
	case StyleAcademic:
		return academicWords.replace(text), nil
	case StyleFormal:
		return formalWords.replace(text), nil
	case StyleCasual:
		return casualize(casualWords.replace(text)), nil
	case StyleSimple:
		return simplify(simpleWords.replace(text), text), nil
	default:
		return restructure(standardWords.replace(text)), nil
	}
}

// splitSentences splits after runs of terminal punctuation followed by
// whitespace, keeping the punctuation with its sentence.
func splitSentences(text string) []string {
	var (
		out  []string
		last int
	)
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		end := loc[0] + len(strings.TrimRightFunc(text[loc[0]:loc[1]], unicode.IsSpace))
		if s := strings.TrimSpace(text[last:end]); s != "" {
			out = append(out, s)
		}
		last = loc[1]
	}
	if s := strings.TrimSpace(text[last:]); s != "" {
		out = append(out, s)
	}
	return out
}

// restructure swaps the first two clauses of every other sentence.
func restructure(text string) string {
	sentences := splitSentences(text)
	for i, s := range sentences {
		if i%2 != 0 {
			continue
		}
		body, punct := trimTerminal(s)
		head, tail, ok := strings.Cut(body, ",")
		head, tail = strings.TrimSpace(head), strings.TrimSpace(tail)
		if !ok || head == "" || tail == "" {
			continue
		}
		sentences[i] = capitalize(tail) + ", " + decapitalize(head) + punct
	}
	return strings.Join(sentences, " ")
}

func casualize(text string) string {
	if utf8.RuneCountInString(text) <= 50 {
		return text
	}
	sentences := splitSentences(text)
	if len(sentences) < 3 {
		return text
	}
	sentences[1] = "You know, " + decapitalize(sentences[1])
	return strings.Join(sentences, " ")
}

// simplify breaks text into short sentences at clause and comma boundaries.
// Fragments of five characters or fewer are dropped; original is returned
// when nothing survives.
func simplify(text, original string) string {
	var parts []string
	for _, clause := range clauseBreak.Split(text, -1) {
		for _, part := range strings.Split(clause, ",") {
			if part = strings.TrimSpace(part); len(part) > 5 {
				parts = append(parts, capitalize(part))
			}
		}
	}
	if len(parts) == 0 {
		return original
	}
	return strings.Join(parts, ". ") + "."
}

func trimTerminal(s string) (body, punct string) {
	body = strings.TrimRight(s, ".!?")
	return body, s[len(body):]
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// decapitalize lowers the first letter unless the word looks like an
// acronym or the pronoun "I".
func decapitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || !unicode.IsUpper(r) {
		return s
	}
	if next, _ := utf8.DecodeRuneInString(s[n:]); unicode.IsUpper(next) || !unicode.IsLetter(next) {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}
