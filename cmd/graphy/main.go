package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hanpama/graphy/internal/client"
	"github.com/hanpama/graphy/internal/config"
	"github.com/hanpama/graphy/internal/eventbus"
	"github.com/hanpama/graphy/internal/introspection"
	"github.com/hanpama/graphy/internal/language"
	"github.com/hanpama/graphy/internal/logging"
	"github.com/hanpama/graphy/internal/otel"
	"github.com/hanpama/graphy/internal/schema"
	"github.com/hanpama/graphy/internal/selection"
	"github.com/hanpama/graphy/internal/transport"
)

// version is sent as part of the User-Agent header.
var version = "dev"

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

const rootUsage = `graphy: GraphQL client driven by introspection

USAGE:
  graphy <command> [flags]

COMMANDS:
  inspect          Fetch and print the raw introspection response
  sdl              Render the introspected schema as SDL
  operations       List query and mutation operations with their arguments
  query <name>     Run a query operation
  mutate <name>    Run a mutation operation
  help             Show help for any command
`

const commonUsage = `COMMON FLAGS:
  -endpoint <url>          GraphQL endpoint (or "endpoint" in the config file)
  -config <file>           YAML config file
  -header <K=V>            Extra request header. Repeatable
  -timeout <duration>      Request timeout, e.g. 10s (default: 30s)
  -log.level <level>       debug, info, warn or error (default: info)
  -log.format <format>     text or json (default: text)
  -otel.endpoint <addr>    OTLP collector endpoint
`

const inspectUsage = `inspect FLAGS:
` + commonUsage

const sdlUsage = `sdl FLAGS:
  -file <file>             Read introspection JSON from file instead of the endpoint
  -out <file>              Write SDL to file (default: stdout)
` + commonUsage

const operationsUsage = `operations FLAGS:
  -file <file>             Read introspection JSON from file instead of the endpoint
` + commonUsage

const queryUsage = `query <name> FLAGS:
  -where <json>            Variables as a JSON object, e.g. '{"id": 1}'
  -select <fields>         Selection, e.g. 'id,name,friends{id}' (default: discovered)
  -dry-run                 Print the request instead of sending it
  -file <file>             Read introspection JSON from file instead of the endpoint
` + commonUsage

const mutateUsage = `mutate <name> FLAGS:
  -data <json>             Variables as a JSON object (required)
  -select <fields>         Selection, e.g. 'id,name'
  -dry-run                 Print the request instead of sending it
  -file <file>             Read introspection JSON from file instead of the endpoint
` + commonUsage

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("graphy", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "inspect":
		return cmdInspect(cmdArgs)
	case "sdl":
		return cmdSDL(cmdArgs)
	case "operations":
		return cmdOperations(cmdArgs)
	case "query":
		return cmdQuery(cmdArgs)
	case "mutate":
		return cmdMutate(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, rootUsage)
		return nil
	}
	switch args[0] {
	case "inspect":
		fmt.Fprint(stdout, inspectUsage)
	case "sdl":
		fmt.Fprint(stdout, sdlUsage)
	case "operations":
		fmt.Fprint(stdout, operationsUsage)
	case "query":
		fmt.Fprint(stdout, queryUsage)
	case "mutate":
		fmt.Fprint(stdout, mutateUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type headerFlag map[string]string

func (h headerFlag) String() string { return "" }

func (h headerFlag) Set(v string) error {
	k, val, ok := strings.Cut(v, "=")
	if !ok {
		k, val, ok = strings.Cut(v, ":")
	}
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return fmt.Errorf("invalid header %q", v)
	}
	h[k] = strings.TrimSpace(val)
	return nil
}

// commonFlags are shared by every command that talks to an endpoint.
// Flags override the config file.
type commonFlags struct {
	configPath   string
	endpoint     string
	timeout      time.Duration
	logLevel     string
	logFormat    string
	otelEndpoint string
	headers      headerFlag
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	c.headers = headerFlag{}
	fs.StringVar(&c.configPath, "config", "", "YAML config file")
	fs.StringVar(&c.endpoint, "endpoint", "", "GraphQL endpoint")
	fs.DurationVar(&c.timeout, "timeout", 0, "Request timeout")
	fs.StringVar(&c.logLevel, "log.level", "", "Log level")
	fs.StringVar(&c.logFormat, "log.format", "", "Log format")
	fs.StringVar(&c.otelEndpoint, "otel.endpoint", "", "OTLP collector endpoint")
	fs.Var(c.headers, "header", "Extra request header")
}

func (c *commonFlags) load() (*config.Config, error) {
	cfg := config.Default()
	if c.configPath != "" {
		var err error
		if cfg, err = config.Load(c.configPath); err != nil {
			return nil, err
		}
	}
	if c.endpoint != "" {
		cfg.Endpoint = c.endpoint
	}
	if c.timeout > 0 {
		cfg.Timeout = c.timeout
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if c.logFormat != "" {
		cfg.Log.Format = c.logFormat
	}
	if c.otelEndpoint != "" {
		cfg.OTel.Endpoint = c.otelEndpoint
	}
	if len(c.headers) > 0 && cfg.Headers == nil {
		cfg.Headers = map[string]string{}
	}
	for k, v := range c.headers {
		cfg.Headers[k] = v
	}
	return cfg, cfg.Validate()
}

// env is the runtime every command shares once flags are parsed.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	shutdown func()
}

func setup(c *commonFlags) (*env, error) {
	cfg, err := c.load()
	if err != nil {
		return nil, err
	}
	logger := logging.Setup(cfg.Log.Format, cfg.Log.Level)
	eventbus.Use(eventbus.New())
	unsubscribe := logging.Subscribe(logger)
	otelShutdown, err := otel.Setup(cfg.OTel.Endpoint, cfg.OTel.Service)
	if err != nil {
		unsubscribe()
		return nil, fmt.Errorf("otel setup: %w", err)
	}
	return &env{
		cfg:    cfg,
		logger: logger,
		shutdown: func() {
			_ = otelShutdown(context.Background())
			unsubscribe()
		},
	}, nil
}

func (e *env) transportOptions() []transport.Option {
	ua := e.cfg.UserAgent
	if ua == "graphy" {
		ua = "graphy/" + version
	}
	opts := []transport.Option{
		transport.WithTimeout(e.cfg.Timeout),
		transport.WithUserAgent(ua),
	}
	for k, v := range e.cfg.Headers {
		opts = append(opts, transport.WithHeader(k, v))
	}
	return opts
}

func (e *env) transport() *transport.HTTP {
	settings := e.cfg.ClientSettings()
	opts := append(e.transportOptions(), transport.WithResponseKey(settings.ResponseKey))
	return transport.New(opts...)
}

func (e *env) requireEndpoint(usage string) error {
	if e.cfg.Endpoint == "" {
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("-endpoint is required")
	}
	return nil
}

// loadSchema reads the introspection document from file, or fetches it from
// the endpoint when file is empty.
func (e *env) loadSchema(ctx context.Context, file, usage string) (*schema.Schema, error) {
	var raw []byte
	var err error
	if file != "" {
		raw, err = os.ReadFile(file)
	} else {
		if err := e.requireEndpoint(usage); err != nil {
			return nil, err
		}
		raw, err = introspection.Fetch(ctx, e.transport(), e.cfg.Endpoint)
	}
	if err != nil {
		return nil, err
	}
	s, err := schema.FromIntrospection(raw)
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	return s, nil
}

func (e *env) client(ctx context.Context, file, usage string) (*client.Client, error) {
	if err := e.requireEndpoint(usage); err != nil {
		return nil, err
	}
	opts := []client.Option{
		client.WithSettings(e.cfg.ClientSettings()),
		client.WithLogger(e.logger),
		client.WithTransportOptions(e.transportOptions()...),
	}
	if file != "" {
		s, err := e.loadSchema(ctx, file, usage)
		if err != nil {
			return nil, err
		}
		opts = append(opts, client.WithSchema(s))
	}
	return client.New(ctx, e.cfg.Endpoint, opts...)
}

func cmdInspect(args []string) error {
	var common commonFlags
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(stderr, inspectUsage)
		return err
	}
	e, err := setup(&common)
	if err != nil {
		return err
	}
	defer e.shutdown()
	if err := e.requireEndpoint(inspectUsage); err != nil {
		return err
	}

	raw, err := introspection.Fetch(context.Background(), e.transport(), e.cfg.Endpoint)
	if err != nil {
		return err
	}
	return writeJSON(stdout, raw)
}

func cmdSDL(args []string) error {
	var common commonFlags
	file := ""
	outFile := ""
	fs := flag.NewFlagSet("sdl", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	common.register(fs)
	fs.StringVar(&file, "file", file, "Introspection JSON file")
	fs.StringVar(&outFile, "out", outFile, "Write SDL to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(stderr, sdlUsage)
		return err
	}
	e, err := setup(&common)
	if err != nil {
		return err
	}
	defer e.shutdown()

	s, err := e.loadSchema(context.Background(), file, sdlUsage)
	if err != nil {
		return err
	}
	sdl := schema.Render(s)
	if _, err := language.ParseSchema("schema.graphql", sdl); err != nil {
		return fmt.Errorf("rendered SDL does not parse: %w", err)
	}
	if outFile == "" {
		fmt.Fprint(stdout, sdl)
		return nil
	}
	return os.WriteFile(outFile, []byte(sdl), 0644)
}

func cmdOperations(args []string) error {
	var common commonFlags
	file := ""
	fs := flag.NewFlagSet("operations", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	common.register(fs)
	fs.StringVar(&file, "file", file, "Introspection JSON file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(stderr, operationsUsage)
		return err
	}
	e, err := setup(&common)
	if err != nil {
		return err
	}
	defer e.shutdown()

	s, err := e.loadSchema(context.Background(), file, operationsUsage)
	if err != nil {
		return err
	}
	printOperations(stdout, "query", s.Queries)
	printOperations(stdout, "mutation", s.Mutations)
	return nil
}

func printOperations(w io.Writer, kind string, ops []*schema.Operation) {
	for _, op := range ops {
		args := make([]string, len(op.ArgOrder))
		for i, name := range op.ArgOrder {
			args[i] = name + ": " + op.Arguments[name]
		}
		sig := op.Name
		if len(args) > 0 {
			sig += "(" + strings.Join(args, ", ") + ")"
		}
		fmt.Fprintf(w, "%s %s: %s\n", kind, sig, op.ReturnType)
	}
}

// opFlags are the flags of query and mutate.
type opFlags struct {
	common commonFlags
	vars   string
	sel    string
	dryRun bool
	file   string
}

func parseOpFlags(name, varsFlag, usage string, args []string) (*opFlags, string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fmt.Fprint(stderr, usage)
		return nil, "", fmt.Errorf("missing operation name")
	}
	op := args[0]
	f := &opFlags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	f.common.register(fs)
	fs.StringVar(&f.vars, varsFlag, "", "Variables as a JSON object")
	fs.StringVar(&f.sel, "select", "", "Selection")
	fs.BoolVar(&f.dryRun, "dry-run", false, "Print the request instead of sending it")
	fs.StringVar(&f.file, "file", "", "Introspection JSON file")
	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprint(stderr, usage)
		return nil, "", err
	}
	return f, op, nil
}

func cmdQuery(args []string) error {
	f, name, err := parseOpFlags("query", "where", queryUsage, args)
	if err != nil {
		return err
	}
	where, err := parseVars("-where", f.vars)
	if err != nil {
		return err
	}
	sel, err := parseSelection(f.sel)
	if err != nil {
		return err
	}
	e, err := setup(&f.common)
	if err != nil {
		return err
	}
	defer e.shutdown()

	ctx := context.Background()
	c, err := e.client(ctx, f.file, queryUsage)
	if err != nil {
		return err
	}
	op, err := c.Query().Get(name)
	if err != nil {
		return err
	}
	if f.dryRun {
		req, err := op.Build(sel, where)
		if err != nil {
			return err
		}
		return writeRequest(stdout, req)
	}
	resp, err := op.Call(ctx, sel, where)
	if err != nil {
		return err
	}
	return writeResponse(stdout, resp)
}

func cmdMutate(args []string) error {
	f, name, err := parseOpFlags("mutate", "data", mutateUsage, args)
	if err != nil {
		return err
	}
	data, err := parseVars("-data", f.vars)
	if err != nil {
		return err
	}
	sel, err := parseSelection(f.sel)
	if err != nil {
		return err
	}
	e, err := setup(&f.common)
	if err != nil {
		return err
	}
	defer e.shutdown()

	ctx := context.Background()
	c, err := e.client(ctx, f.file, mutateUsage)
	if err != nil {
		return err
	}
	op, err := c.Mutation().Get(name)
	if err != nil {
		return err
	}
	if f.dryRun {
		req, err := op.Build(sel, data)
		if err != nil {
			return err
		}
		return writeRequest(stdout, req)
	}
	resp, err := op.Call(ctx, sel, data)
	if err != nil {
		return err
	}
	return writeResponse(stdout, resp)
}

// parseVars decodes a JSON object flag. An empty flag yields nil.
func parseVars(flagName, s string) (client.Vars, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var vars client.Vars
	if err := dec.Decode(&vars); err != nil {
		return nil, fmt.Errorf("%s: %w", flagName, err)
	}
	if vars == nil {
		return nil, fmt.Errorf("%s: expected a JSON object", flagName)
	}
	return vars, nil
}

// parseSelection parses the -select flag. An empty flag yields nil so the
// default selection applies.
func parseSelection(s string) ([]selection.SelectionField, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields, err := selection.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("-select: %w", err)
	}
	return fields, nil
}

func writeRequest(w io.Writer, req transport.Request) error {
	fmt.Fprintln(w, req.Query)
	if len(req.Variables) == 0 {
		return nil
	}
	raw, err := json.MarshalIndent(req.Variables, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(raw))
	return nil
}

// writeResponse prints the response body. GraphQL errors in the payload are
// also returned so the exit status reflects them.
func writeResponse(w io.Writer, resp *transport.Response) error {
	if err := writeJSON(w, resp.Body); err != nil {
		// Not JSON; print as received.
		fmt.Fprintln(w, string(resp.Body))
	}
	if len(resp.Errors) > 0 {
		return resp.Errors
	}
	return nil
}

func writeJSON(w io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}
