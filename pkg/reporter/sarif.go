package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/lint"
	"github.com/yaklabco/csvdoc/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	toolName       = "csvdoc"
	toolURI        = "https://github.com/yaklabco/csvdoc"
)

// SARIFOutput is a SARIF 2.1.0 log with a single run.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun is one invocation of the checker.
type SARIFRun struct {
	Tool              SARIFTool              `json:"tool"`
	AutomationDetails SARIFAutomationDetails `json:"automationDetails"`
	Invocations       []SARIFInvocation      `json:"invocations"`
	Artifacts         []SARIFArtifact        `json:"artifacts,omitempty"`
	Results           []SARIFResult          `json:"results"`
}

// SARIFAutomationDetails carries the run ID.
type SARIFAutomationDetails struct {
	GUID string `json:"guid"`
}

// SARIFInvocation reports whether every file could be checked. Unreadable
// files become notifications.
type SARIFInvocation struct {
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Notifications       []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification is a problem with the run rather than with a document.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFTool wraps the driver description.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver names the tool and lists the rules that produced results.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes one rule.
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription,omitempty"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

// SARIFMultiformatText is plain message text.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig holds a rule's default level.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFArtifact is a checked file and its content hash.
type SARIFArtifact struct {
	Location SARIFArtifactLocation `json:"location"`
	Hashes   map[string]string     `json:"hashes,omitempty"`
}

// SARIFResult is one diagnostic.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`

	// Properties carries the 1-based CSV row and column when known.
	Properties map[string]any `json:"properties,omitempty"`
}

// SARIFMessage is a result or notification message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation places a result in a file and, for cell diagnostics, in the
// document's row and column structure.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation  `json:"physicalLocation"`
	LogicalLocations []SARIFLogicalLocation `json:"logicalLocations,omitempty"`
}

// SARIFPhysicalLocation is a file and a text region within it.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation is a file URI, relative to the working directory
// when one is configured.
type SARIFArtifactLocation struct {
	URI   string `json:"uri"`
	Index *int   `json:"index,omitempty"`
}

// SARIFRegion is a 1-based text range.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFLogicalLocation names a row or cell, such as "row 3, col 2".
type SARIFLogicalLocation struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// SARIFReporter writes results as a SARIF log.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts, out: opts.Writer}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.build(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}
	return len(output.Runs[0].Results), nil
}

// sarifBuilder accumulates one run, indexing rules in first-seen order.
type sarifBuilder struct {
	opts      Options
	run       SARIFRun
	ruleIndex map[string]int
}

func (r *SARIFReporter) build(result *runner.Result) *SARIFOutput {
	b := &sarifBuilder{
		opts: r.opts,
		run: SARIFRun{
			Tool: SARIFTool{Driver: SARIFDriver{
				Name:           toolName,
				Version:        r.opts.toolVersion(),
				InformationURI: toolURI,
				Rules:          []SARIFRule{},
			}},
			AutomationDetails: SARIFAutomationDetails{GUID: r.opts.runID()},
			Invocations:       []SARIFInvocation{{ExecutionSuccessful: true}},
			Results:           []SARIFResult{},
		},
		ruleIndex: map[string]int{},
	}

	if result != nil {
		for _, file := range result.Files {
			b.addFile(file)
		}
	}

	return &SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{b.run}}
}

func (b *sarifBuilder) addFile(file runner.FileOutcome) {
	uri := displayPath(file.Path, b.opts.WorkingDir)

	if file.Error != nil {
		invocation := &b.run.Invocations[0]
		invocation.ExecutionSuccessful = false
		invocation.Notifications = append(invocation.Notifications, SARIFNotification{
			Level:   "error",
			Message: SARIFMessage{Text: file.Error.Error()},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{ArtifactLocation: SARIFArtifactLocation{URI: uri}},
			}},
		})
		return
	}
	if file.Result == nil || file.Result.FileResult == nil {
		return
	}

	artifact := SARIFArtifact{Location: SARIFArtifactLocation{URI: uri}}
	if snapshot := file.Result.Snapshot; snapshot != nil && snapshot.Hash != "" {
		artifact.Hashes = map[string]string{"blake3-256": snapshot.Hash}
	}
	artifactIndex := len(b.run.Artifacts)
	b.run.Artifacts = append(b.run.Artifacts, artifact)

	for i := range file.Result.Diagnostics {
		diag := &file.Result.Diagnostics[i]
		b.run.Results = append(b.run.Results, SARIFResult{
			RuleID:    diag.RuleID,
			RuleIndex: b.rule(diag),
			Level:     sarifLevel(diag.Severity),
			Message:   SARIFMessage{Text: diag.Message},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{
					ArtifactLocation: SARIFArtifactLocation{URI: uri, Index: &artifactIndex},
					Region: &SARIFRegion{
						StartLine:   diag.StartLine,
						StartColumn: diag.StartColumn,
						EndLine:     diag.EndLine,
						EndColumn:   diag.EndColumn,
					},
				},
				LogicalLocations: cellLocation(diag),
			}},
			Properties: cellProperties(diag),
		})
	}
}

// rule returns the index of diag's rule in the driver, describing it on
// first use. Registry metadata wins over what the diagnostic carries.
func (b *sarifBuilder) rule(diag *lint.Diagnostic) int {
	if index, ok := b.ruleIndex[diag.RuleID]; ok {
		return index
	}

	rule := SARIFRule{
		ID:               diag.RuleID,
		Name:             diag.RuleName,
		ShortDescription: SARIFMultiformatText{Text: diag.Message},
		DefaultConfig:    &SARIFRuleConfig{Level: sarifLevel(diag.Severity)},
	}
	if b.opts.Registry != nil {
		if registered, ok := b.opts.Registry.Get(diag.RuleID); ok {
			rule.ShortDescription.Text = registered.Description()
			rule.DefaultConfig.Level = sarifLevel(registered.DefaultSeverity())
			if tags := registered.Tags(); len(tags) > 0 {
				rule.Properties = map[string]any{"tags": tags}
			}
		}
	}

	index := len(b.run.Tool.Driver.Rules)
	b.run.Tool.Driver.Rules = append(b.run.Tool.Driver.Rules, rule)
	b.ruleIndex[diag.RuleID] = index
	return index
}

func cellProperties(diag *lint.Diagnostic) map[string]any {
	if diag.Row <= 0 {
		return nil
	}
	props := map[string]any{"row": diag.Row}
	if diag.Column > 0 {
		props["column"] = diag.Column
	}
	return props
}

func cellLocation(diag *lint.Diagnostic) []SARIFLogicalLocation {
	switch {
	case diag.Row > 0 && diag.Column > 0:
		return []SARIFLogicalLocation{{Name: fmt.Sprintf("row %d, col %d", diag.Row, diag.Column), Kind: "element"}}
	case diag.Row > 0:
		return []SARIFLogicalLocation{{Name: fmt.Sprintf("row %d", diag.Row), Kind: "element"}}
	default:
		return nil
	}
}

func sarifLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
