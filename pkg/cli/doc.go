/*
Package cli provides command-line helpers for the pairnum command.

Output Formatting:

Results are printed as text or JSON:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Values implementing TextWriter control their own text rendering.

Exit Codes:

ExitCode maps a command error to the process exit status: 2 for malformed
input, 1 for any other failure.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
