package diagfmt

import (
	"encoding/json"
	"io"

	"phpsniff/internal/diag"
	"phpsniff/internal/source"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string           `json:"ruleId"`
	RuleIndex *int             `json:"ruleIndex,omitempty"`
	Level     string           `json:"level"`
	Message   sarifMessage     `json:"message"`
	Locations []sarifLocation  `json:"locations"`
	Related   []sarifLocation  `json:"relatedLocations,omitempty"`
	Props     *sarifProperties `json:"properties,omitempty"`
}

type sarifProperties struct {
	Sniff   string `json:"sniff"`
	Fixable bool   `json:"fixable"`
}

type sarifLocation struct {
	Physical sarifPhysical `json:"physicalLocation"`
	Message  *sarifMessage `json:"message,omitempty"`
}

type sarifPhysical struct {
	Artifact sarifArtifact `json:"artifactLocation"`
	Region   sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

// Sarif writes the diagnostics as a SARIF 2.1.0 log with a single run.
// Result rule ids are the short codes; the rules table comes from meta.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	drv := sarifDriver{Name: meta.ToolName, Version: meta.ToolVersion, InformationURI: meta.InformationURI}
	ruleIndex := make(map[string]int)
	for _, r := range meta.Rules {
		for _, c := range r.Codes {
			if _, dup := ruleIndex[c.ID]; dup {
				continue
			}
			ruleIndex[c.ID] = len(drv.Rules)
			drv.Rules = append(drv.Rules, sarifRule{ID: c.ID, Name: c.Name, ShortDescription: sarifMessage{Text: c.Title}})
		}
	}

	run := sarifRun{Tool: sarifTool{Driver: drv}, Results: make([]sarifResult, 0, bag.Len())}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: true}}
	}

	for _, d := range bag.Items() {
		res := sarifResult{
			RuleID:    d.Code.ID(),
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: d.Message},
			Locations: []sarifLocation{sarifLoc(fs, d.Primary, "")},
			Props:     &sarifProperties{Sniff: d.Code.Name(), Fixable: d.Fixable()},
		}
		if idx, ok := ruleIndex[res.RuleID]; ok {
			res.RuleIndex = &idx
		}
		for _, n := range d.Notes {
			res.Related = append(res.Related, sarifLoc(fs, n.Span, n.Msg))
		}
		run.Results = append(run.Results, res)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}})
}

func sarifLoc(fs *source.FileSet, span source.Span, msg string) sarifLocation {
	start, end := fs.Resolve(span)
	loc := sarifLocation{Physical: sarifPhysical{
		Artifact: sarifArtifact{URI: fs.Get(span.File).Path},
		Region: sarifRegion{
			StartLine:   start.Line,
			StartColumn: start.Col,
			EndLine:     end.Line,
			EndColumn:   end.Col,
		},
	}}
	if msg != "" {
		loc.Message = &sarifMessage{Text: msg}
	}
	return loc
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}
