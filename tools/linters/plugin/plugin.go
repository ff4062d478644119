package main

import (
	"golang.org/x/tools/go/analysis"

	"bugdesk.app/api-server/tools/linters/enumvalidator"
)

type AnalyzerPlugin struct{}

func (*AnalyzerPlugin) GetAnalyzers() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		enumvalidator.Analyzer,
	}
}

func New(conf any) ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{enumvalidator.Analyzer}, nil
}

// main is required for package main to compile outside -buildmode=plugin;
// it is never invoked when loaded as a plugin.
func main() {}
