// Package cli implements the climblog command line client.
package cli

import "github.com/spf13/cobra"

// Version is overridden at build time with -ldflags "-X ...".
var Version = "v0.1.0"

// NewRootCmd creates the root cobra command for the climblog CLI.
func NewRootCmd() *cobra.Command {
	cfg := defaultConfig()
	var rt *runtime

	root := &cobra.Command{
		Use:   "climblog",
		Short: "Log climbs and attempts against the climbing tracker API",
		Long: "climblog keeps one signed-in session on this machine and uses it for every " +
			"command. Sessions last as long as the API's access token; when the API " +
			"rejects it you are signed out and asked to log in again.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			rt, err = newRuntime(cmd.Context(), cfg, cmd.ErrOrStderr())
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "API base URL (or CLIMBLOG_API_URL env)")
	flags.StringVar(&cfg.Store, "store", cfg.Store, "token store: bolt, sqlite or memory (or CLIMBLOG_STORE env)")
	flags.StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "token store file (or CLIMBLOG_STORE_PATH env)")
	flags.StringVar(&cfg.MasterKeyPath, "master-key", cfg.MasterKeyPath, "master key file sealing the token (or CLIMBLOG_MASTER_KEY_PATH env)")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout (or CLIMBLOG_TIMEOUT env)")
	flags.DurationVar(&cfg.Grace, "grace", cfg.Grace, "treat tokens this close to expiry as expired (or CLIMBLOG_GRACE env)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text, json")
	flags.BoolVar(&cfg.JSON, "json", false, "print results as JSON")

	// Commands read rt lazily; it is built in PersistentPreRunE.
	get := func() *runtime { return rt }

	root.AddCommand(
		newLoginCmd(get),
		newRegisterCmd(get),
		newLogoutCmd(get),
		newStatusCmd(get),
		newDeleteAccountCmd(get),
		newClimbsCmd(get),
		newAttemptsCmd(get),
		newGymsCmd(get),
		newStylesCmd(get),
		newSkillsCmd(get),
	)

	closeAfterRun(root, func() {
		if rt != nil {
			rt.Close()
			rt = nil
		}
	})
	return root
}

// closeAfterRun wraps every RunE in the tree so closeFn runs whether or not
// the command failed. Cobra skips PersistentPostRun after an error, which
// would leave the token store locked.
func closeAfterRun(cmd *cobra.Command, closeFn func()) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			defer closeFn()
			return run(cmd, args)
		}
	}
	for _, c := range cmd.Commands() {
		closeAfterRun(c, closeFn)
	}
}
