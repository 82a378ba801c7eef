package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mealie-tools/mealie-api/packages/core/config"
	"github.com/mealie-tools/mealie-api/packages/core/env"
	"github.com/mealie-tools/mealie-api/packages/history"
	httpclient "github.com/mealie-tools/mealie-api/packages/http"
	"github.com/mealie-tools/mealie-api/packages/output"
	"github.com/mealie-tools/mealie-api/packages/payload"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	multipartFlag bool
	rawFlag       bool
	verboseFlag   bool
	noColorFlag   bool
	insecureFlag  bool
	timeoutFlag   string
	envFileFlag   string
	queryFlag     string
	schemaFlag    string
	noHistoryFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "mealie-api <endpoint> [json_payload] [http_method]",
	Short: "Call the Mealie REST API without hand-building requests",
	Long: `mealie-api turns terse command lines into authenticated calls against a
Mealie server. The base URL and bearer token come from MEALIE_URL and
MEALIE_TOKEN; the HTTP verb is inferred from the payload when not given
(GET without one, POST with one).

Examples:
  mealie-api recipes
  mealie-api recipes --raw
  mealie-api recipes --verbose
  mealie-api recipes '{"name":"My Recipe"}' POST
  mealie-api recipes/123 '{"name":"Updated Recipe"}' PUT
  mealie-api recipes/123 '' DELETE
  mealie-api recipes/import-url '{"url":"https://example.com"}' POST --multipart
  mealie-api groups/migrations '{"migration_type":"nextcloud","archive":"~/backup.zip"}' POST -m

See https://docs.mealie.io/api/redoc/ for the API itself.`,
	Args:          cobra.MaximumNArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCommand,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitFailure)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&multipartFlag, "multipart", "m", false, "Send the payload as multipart/form-data instead of JSON")
	rootCmd.Flags().BoolVarP(&rawFlag, "raw", "r", false, "Output the raw response body only, for piping into other tools")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show detailed request and response information for debugging")
	rootCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("NO_COLOR", false), "Disable colored output (env: NO_COLOR)")
	rootCmd.Flags().BoolVarP(&insecureFlag, "insecure", "k", false, "Disable SSL certificate validation")
	rootCmd.Flags().StringVar(&timeoutFlag, "timeout", "30s", "Request timeout (e.g. 30s, 1m)")
	rootCmd.Flags().StringVar(&envFileFlag, "env-file", "", "Load MEALIE_URL and MEALIE_TOKEN from a .env file")
	rootCmd.Flags().StringVarP(&queryFlag, "query", "q", "", "Print only the value at this JSON path (gjson syntax)")
	rootCmd.Flags().StringVar(&schemaFlag, "schema", "", "Validate the payload against a JSON Schema file before sending")
	rootCmd.Flags().BoolVar(&noHistoryFlag, "no-history", false, "Skip recording this invocation in the local history")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

// fail prints a fatal error the way the rest of the output looks and
// exits. Every fatal condition surfaces before network I/O where
// feasible; none are retried.
func fail(style *output.Style, lines ...string) {
	for i, line := range lines {
		if i == 0 {
			fmt.Fprintln(os.Stderr, style.Error(line))
			continue
		}
		fmt.Fprintln(os.Stderr, line)
	}
	os.Exit(ExitFailure)
}

func runCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	style := output.NewStyle(noColorFlag)

	if envFileFlag != "" {
		if _, err := env.LoadAndExportDotEnv(envFileFlag); err != nil {
			fail(style, "Error: "+err.Error())
		}
	}

	creds, fileCfg, err := config.Load()
	if err != nil {
		var missing *config.MissingVarError
		if errors.As(err, &missing) {
			fail(style, "Error: "+missing.Error(), missing.Hint)
		}
		fail(style, "Error: "+err.Error())
	}
	if fileCfg.NoColor {
		style = output.NewStyle(true)
	}

	rawPayload := ""
	if len(args) > 1 {
		rawPayload = args[1]
	}
	explicitMethod := ""
	if len(args) > 2 {
		explicitMethod = args[2]
	}

	p, repairedEscapes, err := payload.Parse(rawPayload)
	if err != nil {
		var malformed *payload.MalformedPayloadError
		if errors.As(err, &malformed) {
			fail(style,
				"Error: Invalid JSON payload - "+malformed.Err.Error(),
				style.Warn("Original payload: "+malformed.Original),
				style.Warn("Attempted fix: "+malformed.Repaired),
			)
		}
		fail(style, "Error: "+err.Error())
	}
	if repairedEscapes && !rawFlag {
		fmt.Println(style.Detail("Fixed shell escapes in JSON payload"))
	}

	if schemaFlag != "" && p != nil {
		if err := payload.ValidateSchema(p, schemaFlag); err != nil {
			fail(style, "Error: "+err.Error())
		}
	}

	timeoutStr := timeoutFlag
	if fileCfg.Timeout != "" && !cmd.Flags().Changed("timeout") {
		timeoutStr = fileCfg.Timeout
	}
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		fail(style, fmt.Sprintf("Error: invalid timeout value %q (use format like 30s, 1m)", timeoutStr))
	}

	req, err := httpclient.BuildRequest(creds, args[0], p, explicitMethod, multipartFlag)
	if err != nil {
		var notFound *payload.FileNotFoundError
		if errors.As(err, &notFound) {
			fail(style, "Error: File not found: "+notFound.Path)
		}
		fail(style, "Error: "+err.Error())
	}
	req.Timeout = timeout

	debug := output.NewDebugReporter(os.Stdout, style)
	if verboseFlag {
		debug.PrintRequest(req, p, multipartFlag)
	} else if !rawFlag {
		fmt.Println(style.Info(fmt.Sprintf("Making %s request to: %s", req.Method, req.URL)))
		if multipartFlag {
			fmt.Println(style.Detail("Content-Type: multipart/form-data"))
		}
		if p != nil {
			if encoded, err := p.Encode(); err == nil {
				fmt.Println(style.Warn("Payload: " + string(encoded)))
			}
		}
		fmt.Println()
	}

	if !rawFlag {
		for _, name := range req.FileNames() {
			fmt.Println(style.Detail(fmt.Sprintf("Adding file upload: %s -> %s", name, req.Files[name])))
		}
	}

	clientOpts := []httpclient.ClientOption{httpclient.WithTimeout(timeout)}
	if insecureFlag {
		clientOpts = append(clientOpts, httpclient.WithValidateSSL(false))
	}
	client := httpclient.NewClient(clientOpts...)

	resp, err := client.Do(req)
	if err != nil {
		fail(style, fmt.Sprintf("✗ Request failed: %v", err))
	}

	recordHistory(req, resp, fileCfg)

	if verboseFlag {
		debug.PrintResponse(resp)
	}

	renderer := output.NewRenderer(
		output.WithStyle(style),
		output.WithRaw(rawFlag),
		output.WithQuery(queryFlag),
	)
	if code := renderer.Render(resp); code != ExitSuccess {
		os.Exit(code)
	}
	return nil
}

// recordHistory appends the invocation to the local history database.
// Best-effort: a broken history store must never fail the call itself.
func recordHistory(req *httpclient.Request, resp *httpclient.Response, cfg *config.FileConfig) {
	if noHistoryFlag {
		return
	}

	path := cfg.HistoryPath
	if path == "" {
		var err error
		if path, err = history.DefaultPath(); err != nil {
			return
		}
	}

	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot record history: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.Record(history.Entry{
		Time:       time.Now(),
		Method:     req.Method,
		URL:        req.URL,
		StatusCode: resp.StatusCode,
		DurationMs: resp.DurationMs(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot record history: %v\n", err)
	}
}
