// Command ruleengine is the CLI front end for the rule evaluation engine
// (§B.3). It is an external collaborator: it loads specifications from
// disk, wires a ServiceProvider backend, and renders results. The core
// engine package knows nothing about any of that.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/cloudfoundry-community/vaultkv"
	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"github.com/mattn/go-isatty"
	"github.com/nats-io/nats.go"
	"github.com/starkandwayne/goutils/ansi"
	"github.com/voxelbrain/goptions"

	"github.com/open-regels/ruleengine/internal/config"
	"github.com/open-regels/ruleengine/internal/rlog"
	"github.com/open-regels/ruleengine/pkg/ruleengine"
	"github.com/open-regels/ruleengine/pkg/ruleengine/providers"

	_ "github.com/open-regels/ruleengine/pkg/ruleengine/operators" // register operators
)

var exit = os.Exit

type evalOpts struct {
	ServiceContext  string `goptions:"--service-context, description='JSON object identifying the subject'"`
	OverwriteInput  string `goptions:"--overwrite, description='JSON object of @service.field override values'"`
	Sources         string `goptions:"--sources, description='JSON object of table -> field -> value'"`
	CalculationDate string `goptions:"--date, description='ISO-8601 calculation date'"`
	Output          string `goptions:"--output, description='Only compute this output name'"`
	Config          string `goptions:"--config, description='Path to a ruleengine config file'"`
	Help            bool   `goptions:"--help, -h"`
	Files           goptions.Remainder
}

type diffOpts struct {
	Help  bool `goptions:"--help, -h"`
	Files goptions.Remainder `goptions:"description='Two evaluation result JSON files to compare'"`
}

func main() {
	var options struct {
		Color  string `goptions:"--color, description='Control color output (on/off/auto, default: auto)'"`
		Action goptions.Verbs
		Eval   evalOpts `goptions:"eval"`
		Diff   diffOpts `goptions:"diff"`
	}

	if err := goptions.Parse(&options); err != nil {
		goptions.PrintHelp()
		exit(1)
		return
	}

	colorOn := options.Color == "on" || (options.Color != "off" && isatty.IsTerminal(os.Stdout.Fd()))
	ansi.Color(colorOn)

	switch options.Action {
	case "eval":
		runEval(options.Eval)
	case "diff":
		runDiff(options.Diff)
	default:
		goptions.PrintHelp()
		exit(1)
	}
}

func runEval(opts evalOpts) {
	if len(opts.Files) != 1 {
		fmt.Fprintln(os.Stderr, ansi.Sprintf("@R{exactly one specification file is required}"))
		exit(1)
		return
	}

	cfg, err := config.LoadFile(opts.Config)
	fatalIf(err)
	rlog.SetLevel(cfg.Logging.Level)

	spec, err := ruleengine.LoadSpecification(opts.Files[0])
	fatalIf(err)

	provider, err := buildProvider(cfg)
	fatalIf(err)

	engine, err := ruleengine.NewEngine(spec, provider)
	fatalIf(err)

	req := ruleengine.EvaluationRequest{
		CalculationDate: opts.CalculationDate,
		RequestedOutput: opts.Output,
	}
	fatalIf(decodeJSONFlag(opts.ServiceContext, &req.ServiceContext))
	fatalIf(decodeJSONFlag(opts.OverwriteInput, &req.OverwriteInput))
	fatalIf(decodeJSONFlag(opts.Sources, &req.Sources))

	result, err := engine.Evaluate(context.Background(), req)
	fatalIf(err)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	fatalIf(enc.Encode(result))
}

func runDiff(opts diffOpts) {
	if len(opts.Files) != 2 {
		fmt.Fprintln(os.Stderr, ansi.Sprintf("@R{diff requires exactly two evaluation result files}"))
		exit(1)
		return
	}

	report, changed, err := diffResults(opts.Files[0], opts.Files[1])
	fatalIf(err)

	fmt.Print(report)
	if changed {
		exit(1)
	}
}

// diffResults renders a structural diff between two evaluation result
// files using the ytbx/dyff pipeline, applied here to two EvaluationResult
// JSON documents, so a reviewer can see exactly which outputs or trace
// branches changed between two calculation dates or specification
// revisions.
func diffResults(pathA, pathB string) (string, bool, error) {
	from, to, err := ytbx.LoadFiles(pathA, pathB)
	if err != nil {
		return "", false, err
	}

	report, err := dyff.CompareInputFiles(from, to)
	if err != nil {
		return "", false, err
	}

	writer := &dyff.HumanReport{
		Report:       report,
		NoTableStyle: false,
		OmitHeader:   true,
	}

	var buf bytes.Buffer
	out := bufio.NewWriter(&buf)
	writer.WriteReport(out)
	out.Flush()

	return buf.String(), len(report.Diffs) > 0, nil
}

func buildProvider(cfg *config.Config) (ruleengine.ServiceProvider, error) {
	referenceDate := time.Now().UTC().Format("2006-01-02")

	switch cfg.Provider.Backend {
	case "", "none":
		return nil, nil
	case "file":
		return providers.NewFileProvider(referenceDate, cfg.Provider.FixturePath)
	case "nats":
		conn, err := nats.Connect(cfg.Provider.NATSURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to NATS at %s: %w", cfg.Provider.NATSURL, err)
		}
		return providers.NewNatsProvider(conn, referenceDate), nil
	case "vault":
		addr, err := url.Parse(cfg.Provider.VaultAddr)
		if err != nil {
			return nil, fmt.Errorf("parsing vault address %q: %w", cfg.Provider.VaultAddr, err)
		}
		client := &vaultkv.Client{
			AuthToken: cfg.Provider.VaultToken,
			VaultURL:  addr,
		}
		return providers.NewVaultProvider(client.NewKV(), referenceDate), nil
	default:
		return nil, fmt.Errorf("unknown provider backend %q", cfg.Provider.Backend)
	}
}

func decodeJSONFlag(flag string, out interface{}) error {
	if flag == "" {
		return nil
	}
	return json.Unmarshal([]byte(flag), out)
}

func fatalIf(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, ansi.Sprintf("@R{error:} %s", err))
	exit(1)
}
