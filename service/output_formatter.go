package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agent-harness/harness/domain"
	"github.com/agent-harness/harness/internal/constants"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// Write renders the report in the given format to the writer
func (f *OutputFormatterImpl) Write(report *domain.HarnessReport, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.writeText(report, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, report)
	case domain.OutputFormatYAML:
		return writeYAML(writer, report)
	case domain.OutputFormatMarkdown:
		return f.writeMarkdown(report, writer)
	case domain.OutputFormatSARIF:
		return f.writeSARIF(report, writer)
	default:
		return domain.NewOutputError(fmt.Sprintf("unsupported output format: %s", format), nil)
	}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func writeYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

func (f *OutputFormatterImpl) writeText(report *domain.HarnessReport, writer io.Writer) error {
	fmt.Fprintf(writer, "Overall score: %.3f\n\n", report.OverallScore)
	fmt.Fprintf(writer, "Category scores:\n")
	fmt.Fprintf(writer, "  context:            %.3f\n", report.CategoryScores.Context)
	fmt.Fprintf(writer, "  tools:              %.3f\n", report.CategoryScores.Tools)
	fmt.Fprintf(writer, "  continuity:         %.3f\n", report.CategoryScores.Continuity)
	fmt.Fprintf(writer, "  verification:       %.3f\n", report.CategoryScores.Verification)
	fmt.Fprintf(writer, "  repository_quality: %.3f\n", report.CategoryScores.RepositoryQuality)

	fmt.Fprintf(writer, "\nFindings: %d\n", len(report.Findings))
	for _, finding := range report.Findings {
		level := "WARN"
		if finding.Blocking {
			level = "BLOCKING"
		}
		fmt.Fprintf(writer, "  [%s] %s: %s\n", level, finding.ID, finding.Title)
	}

	fmt.Fprintf(writer, "\nRecommendations: %d\n", len(report.Recommendations))
	for _, recommendation := range report.Recommendations {
		fmt.Fprintf(writer, "  %s (%s/%s, confidence %.2f): %s\n",
			recommendation.ID, recommendation.Impact, recommendation.Effort,
			recommendation.Confidence, recommendation.Title)
	}
	return nil
}

func (f *OutputFormatterImpl) writeMarkdown(report *domain.HarnessReport, writer io.Writer) error {
	var output strings.Builder
	output.WriteString("# Harness Report\n\n")
	fmt.Fprintf(&output, "Overall score: %.3f\n\n", report.OverallScore)
	output.WriteString("## Category Scores\n\n")
	fmt.Fprintf(&output,
		"- context: %.3f\n- tools: %.3f\n- continuity: %.3f\n- verification: %.3f\n- repository_quality: %.3f\n\n",
		report.CategoryScores.Context,
		report.CategoryScores.Tools,
		report.CategoryScores.Continuity,
		report.CategoryScores.Verification,
		report.CategoryScores.RepositoryQuality)

	output.WriteString("## Findings\n\n")
	if len(report.Findings) == 0 {
		output.WriteString("- none\n\n")
	} else {
		for _, finding := range report.Findings {
			level := "warning"
			if finding.Blocking {
				level = "blocking"
			}
			fmt.Fprintf(&output, "- [%s] %s: %s\n", level, finding.Title, finding.Body)
		}
		output.WriteString("\n")
	}

	output.WriteString("## Recommendations\n\n")
	if len(report.Recommendations) == 0 {
		output.WriteString("- none\n")
	} else {
		for _, recommendation := range report.Recommendations {
			fmt.Fprintf(&output, "- %s (%s/%s, confidence %.2f): %s\n",
				recommendation.Title, recommendation.Impact, recommendation.Effort,
				recommendation.Confidence, recommendation.Summary)
		}
	}

	_, err := io.WriteString(writer, output.String())
	return err
}

// sarifLog is the minimal SARIF 2.1.0 envelope
type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID  string       `json:"ruleId"`
	Level   string       `json:"level"`
	Message sarifMessage `json:"message"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

func (f *OutputFormatterImpl) writeSARIF(report *domain.HarnessReport, writer io.Writer) error {
	rules := make([]sarifRule, 0, len(report.Findings))
	results := make([]sarifResult, 0, len(report.Findings))
	seenRules := make(map[string]bool)
	for _, finding := range report.Findings {
		if !seenRules[finding.ID] {
			seenRules[finding.ID] = true
			rules = append(rules, sarifRule{
				ID:               finding.ID,
				ShortDescription: sarifMessage{Text: finding.Title},
			})
		}
		level := "warning"
		if finding.Blocking {
			level = "error"
		}
		results = append(results, sarifResult{
			RuleID:  finding.ID,
			Level:   level,
			Message: sarifMessage{Text: finding.Body},
		})
	}

	log := sarifLog{
		Version: "2.1.0",
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:  constants.ToolName,
				Rules: rules,
			}},
			Results: results,
		}},
	}
	return WriteJSON(writer, log)
}

// ParseOutputFormat validates a format flag value
func ParseOutputFormat(value string) (domain.OutputFormat, error) {
	switch domain.OutputFormat(value) {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML,
		domain.OutputFormatMarkdown, domain.OutputFormatSARIF:
		return domain.OutputFormat(value), nil
	default:
		return "", domain.NewInvalidInputError(fmt.Sprintf("unsupported output format: %s", value), nil)
	}
}
