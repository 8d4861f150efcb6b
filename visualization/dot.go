package visualization

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/anggasct/pactum"
)

// DOTGenerator generates Graphviz DOT format representations of validation pipelines
type DOTGenerator struct {
	pipelineDefinition pactum.PipelineDefinition
	options            DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	ShowGuards      bool
	ShowCheckCounts bool
	ShowSummaries   bool
	CompactMode     bool
	RankDirection   string // "TB", "LR", "BT", "RL"
	NodeShape       string
	EdgeStyle       string
	GuardedStyle    string
	SummaryShape    string
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		ShowGuards:      true,
		ShowCheckCounts: true,
		ShowSummaries:   true,
		CompactMode:     false,
		RankDirection:   "LR",
		NodeShape:       "box",
		EdgeStyle:       "solid",
		GuardedStyle:    "rounded,filled",
		SummaryShape:    "note",
	}
}

// NewDOTGenerator creates a new DOT generator for the given pipeline definition
func NewDOTGenerator(pipelineDefinition pactum.PipelineDefinition, options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{
		pipelineDefinition: pipelineDefinition,
		options:            opts,
	}
}

// Generate creates a DOT representation of the validation pipeline
func (g *DOTGenerator) Generate() (string, error) {
	var dot strings.Builder

	// DOT header
	dot.WriteString("digraph Pipeline {\n")
	dot.WriteString(fmt.Sprintf("  rankdir=%s;\n", g.options.RankDirection))
	dot.WriteString("  node [shape=box];\n")
	dot.WriteString("  edge [fontsize=10];\n\n")

	// Generate stage nodes
	if err := g.generateStages(&dot); err != nil {
		return "", fmt.Errorf("failed to generate stages: %w", err)
	}

	// Generate flow edges
	if err := g.generateFlow(&dot); err != nil {
		return "", fmt.Errorf("failed to generate flow: %w", err)
	}

	// DOT footer
	dot.WriteString("}\n")

	return dot.String(), nil
}

// generateStages generates DOT nodes for all stages
func (g *DOTGenerator) generateStages(dot *strings.Builder) error {
	stages := g.pipelineDefinition.Stages()

	dot.WriteString("  // Stages\n")

	for i, stage := range stages {
		if err := g.generateStageNode(dot, stage, i == 0); err != nil {
			return err
		}
	}

	return nil
}

// generateStageNode generates a DOT node for a single stage
func (g *DOTGenerator) generateStageNode(dot *strings.Builder, stage *pactum.Stage, isEntry bool) error {
	style := g.options.NodeShape
	fillColor := "lightblue"
	label := stage.Name

	if isEntry {
		fillColor = "lightgreen"
	}

	if g.options.ShowCheckCounts && !g.options.CompactMode {
		label += fmt.Sprintf("\\n%d check(s)", len(stage.Checks))
	}

	if g.options.ShowGuards && len(stage.Guards) > 0 {
		// Split guarded style into shape and other attributes
		parts := strings.Split(g.options.GuardedStyle, ",")
		if len(parts) > 0 {
			style = parts[0]
		}
		fillColor = "lightyellow"
		label += fmt.Sprintf("\\n[%d guard(s)]", len(stage.Guards))
	}

	dot.WriteString(fmt.Sprintf("  \"%s\" [shape=%s style=\"filled\" fillcolor=%s label=\"%s\"];\n",
		stage.Name, style, fillColor, label))

	if g.options.ShowSummaries && len(stage.Summaries) > 0 && !g.options.CompactMode {
		summaryNode := stage.Name + "_summary"
		dot.WriteString(fmt.Sprintf("  \"%s\" [shape=%s style=\"filled\" fillcolor=lightcyan label=\"%d summary step(s)\"];\n",
			summaryNode, g.options.SummaryShape, len(stage.Summaries)))
	}

	return nil
}

// generateFlow generates DOT edges following the stage execution order
func (g *DOTGenerator) generateFlow(dot *strings.Builder) error {
	stages := g.pipelineDefinition.Stages()

	dot.WriteString("  // Flow\n")

	for i := 0; i < len(stages)-1; i++ {
		dot.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [style=%s];\n",
			stages[i].Name, stages[i+1].Name, g.options.EdgeStyle))
	}

	if g.options.ShowSummaries && !g.options.CompactMode {
		for _, stage := range stages {
			if len(stage.Summaries) > 0 {
				dot.WriteString(fmt.Sprintf("  \"%s\" -> \"%s_summary\" [style=dashed];\n",
					stage.Name, stage.Name))
			}
		}
	}

	return nil
}

// GenerateToFile writes the DOT representation to a file
func (g *DOTGenerator) GenerateToFile(filename string) error {
	content, err := g.Generate()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0644)
}

// SVGGenerator generates SVG representations by calling Graphviz
type SVGGenerator struct {
	dotGenerator *DOTGenerator
}

// NewSVGGenerator creates a new SVG generator
func NewSVGGenerator(pipelineDefinition pactum.PipelineDefinition, options ...DOTOptions) *SVGGenerator {
	return &SVGGenerator{
		dotGenerator: NewDOTGenerator(pipelineDefinition, options...),
	}
}

// Generate creates an SVG representation of the validation pipeline
func (g *SVGGenerator) Generate() (string, error) {
	dotContent, err := g.dotGenerator.Generate()
	if err != nil {
		return "", err
	}

	// Use Graphviz dot command to convert DOT to SVG
	cmd := exec.Command("dot", "-Tsvg")
	cmd.Stdin = strings.NewReader(dotContent)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to execute dot command: %w (make sure Graphviz is installed)", err)
	}

	return out.String(), nil
}

// GenerateSVG creates an SVG representation of the validation pipeline
// This is a convenience method on DOTGenerator for compatibility
func (g *DOTGenerator) GenerateSVG() (string, error) {
	svgGen := &SVGGenerator{dotGenerator: g}
	return svgGen.Generate()
}
