package section

import (
	"strings"
	"unicode"
)

// ID is a canonical disclosure section identifier. The set is closed: the
// document template and this registry must agree on it (see disclosure.VerifyTemplate).
type ID string

const (
	Title               ID = "TITLE"
	Researcher          ID = "RESEARCHER"
	Purpose             ID = "PURPOSE"
	DetailedDescription ID = "DETAILED_DESCRIPTION"
	TechnologyStatus    ID = "TECHNOLOGY_STATUS"
	Conception          ID = "CONCEPTION"
	PreparingDisclosure ID = "PREPARING_DISCLOSURE"
	Development         ID = "DEVELOPMENT"
	ProgramContract     ID = "PROGRAM_CONTRACT"
	Witnesses           ID = "WITNESSES"
	RelevantInfo        ID = "RELEVANT_INFO"
)

// All returns every canonical section id, in template order.
func All() []ID {
	return []ID{
		Title,
		Researcher,
		Purpose,
		DetailedDescription,
		TechnologyStatus,
		Conception,
		PreparingDisclosure,
		Development,
		ProgramContract,
		Witnesses,
		RelevantInfo,
	}
}

// Placeholder returns the literal anchor token for this section in the template.
func (id ID) Placeholder() string {
	return "<<" + string(id) + ">>"
}

// synonyms maps normalized alias keys to canonical ids. The LLM refers to
// sections in Spanish, English, singular/plural and arbitrary casing; adding
// an alias here is the only change needed to support a new spelling.
var synonyms = map[string]ID{
	"TITULO":             Title,
	"INVENTION_TITLE":    Title,
	"TITLE_OF_INVENTION": Title,

	"RESEARCHERS":    Researcher,
	"INVESTIGADOR":   Researcher,
	"INVESTIGADORES": Researcher,
	"INVENTOR":       Researcher,
	"INVENTORS":      Researcher,
	"INVENTORES":     Researcher,
	"AUTORES":        Researcher,

	"PROPOSITO": Purpose,
	"OBJETIVO":  Purpose,
	"OBJECTIVE": Purpose,

	"DESCRIPTION":           DetailedDescription,
	"DESCRIPCION":           DetailedDescription,
	"DESCRIPCION_DETALLADA": DetailedDescription,
	"DETAILED_DESC":         DetailedDescription,

	"STATE_OF_THE_ART":     TechnologyStatus,
	"ESTADO_DEL_ARTE":      TechnologyStatus,
	"ESTADO_DE_LA_TECNICA": TechnologyStatus,
	"PRIOR_ART":            TechnologyStatus,
	"TECHNOLOGY_STATE":     TechnologyStatus,

	"CONCEPCION":      Conception,
	"CONCEPTION_DATE": Conception,

	"PREVIOUS_DISCLOSURE":    PreparingDisclosure,
	"PRIOR_DISCLOSURE":       PreparingDisclosure,
	"DIVULGACION_PREVIA":     PreparingDisclosure,
	"DIVULGACIONES_PREVIAS":  PreparingDisclosure,
	"DISCLOSURE_PREPARATION": PreparingDisclosure,

	"DESARROLLO":         Development,
	"DEVELOPMENT_STATUS": Development,

	"PROGRAMA_CONTRATO": ProgramContract,
	"CONTRATO":          ProgramContract,
	"CONTRACT":          ProgramContract,
	"PROGRAMA":          ProgramContract,
	"FUNDING":           ProgramContract,

	"TESTIGOS": Witnesses,
	"WITNESS":  Witnesses,

	"RELEVANT_INFORMATION":  RelevantInfo,
	"INFORMACION_RELEVANTE": RelevantInfo,
	"INFO_RELEVANTE":        RelevantInfo,
	"ADDITIONAL_INFO":       RelevantInfo,
}

// known is the direct-equality set, derived once from All().
var known = func() map[string]ID {
	m := make(map[string]ID, len(All()))
	for _, id := range All() {
		m[string(id)] = id
	}
	return m
}()

// Normalize maps an arbitrary section reference onto a canonical id.
// It strips placeholder decoration, folds diacritics, uppercases and
// collapses separators, then consults the synonym table and finally the
// canonical enumeration itself. Pure and deterministic; ok is false when
// the reference matches nothing.
func Normalize(raw string) (ID, bool) {
	key := canonicalKey(raw)
	if key == "" {
		return "", false
	}
	if id, ok := synonyms[key]; ok {
		return id, true
	}
	if id, ok := known[key]; ok {
		return id, true
	}
	return "", false
}

// canonicalKey produces the lookup key: one pass over the input, folding
// accented letters and collapsing runs of whitespace/hyphens into a single
// underscore.
func canonicalKey(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "<<")
	s = strings.TrimSuffix(s, ">>")
	s = strings.TrimSpace(s)

	var b strings.Builder
	b.Grow(len(s))

	sep := false
	for _, r := range s {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			sep = true
			continue
		}
		if sep {
			if b.Len() > 0 {
				b.WriteByte('_')
			}
			sep = false
		}
		b.WriteRune(foldAccent(unicode.ToUpper(r)))
	}

	return b.String()
}

func foldAccent(r rune) rune {
	switch r {
	case 'Á', 'À', 'Â', 'Ä', 'Ã':
		return 'A'
	case 'É', 'È', 'Ê', 'Ë':
		return 'E'
	case 'Í', 'Ì', 'Î', 'Ï':
		return 'I'
	case 'Ó', 'Ò', 'Ô', 'Ö', 'Õ':
		return 'O'
	case 'Ú', 'Ù', 'Û', 'Ü':
		return 'U'
	case 'Ñ':
		return 'N'
	case 'Ç':
		return 'C'
	}
	return r
}
