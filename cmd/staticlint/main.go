// Command staticlint runs the project's static checks: a set of analyzers
// from golang.org/x/tools, ineffassign, nilerr, staticcheck and the
// project analyzer noglobalstore, all in one multichecker.
//
// The staticcheck analyzers to enable are listed in config.json next to the
// binary. Without that file every SA analyzer is enabled.
package main

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gordonklaus/ineffassign/pkg/ineffassign"
	"github.com/gostaticanalysis/nilerr"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"honnef.co/go/tools/staticcheck"

	"github.com/patric-chuzhbe/tinyapp/cmd/staticlint/noglobalstore"
)

// Config is the name of the file listing enabled staticcheck analyzers.
const Config = `config.json`

// ConfigData describes the configuration file, e.g. {"Staticcheck": ["SA1000"]}.
type ConfigData struct {
	Staticcheck []string
}

func loadConfig(path string) (*ConfigData, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg ConfigData
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// selectStaticcheck picks the configured analyzers, or all SA ones when cfg
// is nil.
func selectStaticcheck(cfg *ConfigData) []*analysis.Analyzer {
	enabled := make(map[string]bool)
	if cfg != nil {
		for _, name := range cfg.Staticcheck {
			enabled[name] = true
		}
	}

	var result []*analysis.Analyzer
	for _, v := range staticcheck.Analyzers {
		name := v.Analyzer.Name
		if (cfg == nil && strings.HasPrefix(name, "SA")) || enabled[name] {
			result = append(result, v.Analyzer)
		}
	}

	return result
}

func analyzers(cfg *ConfigData) []*analysis.Analyzer {
	checks := []*analysis.Analyzer{
		copylock.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		printf.Analyzer,
		structtag.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,

		ineffassign.Analyzer,
		nilerr.Analyzer,

		noglobalstore.Analyzer,
	}

	return append(checks, selectStaticcheck(cfg)...)
}

func main() {
	appfile, err := os.Executable()
	if err != nil {
		panic(err)
	}
	cfg, err := loadConfig(filepath.Join(filepath.Dir(appfile), Config))
	if err != nil {
		panic(err)
	}

	multichecker.Main(analyzers(cfg)...)
}
