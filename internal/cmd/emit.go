// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mia-platform/logfactory/internal/logger"
)

const (
	emitCmdUsage = "emit MESSAGE [KEY=VALUE...]"
	emitCmdShort = "write a structured log event to the console and to the log file"
	emitCmdLong  = `Write a structured log event to the console and to the log file.
	The event is rendered as a single JSON line containing the timestamp, the level,
	the logger name, the message under the "event" key and every KEY=VALUE pair.

	Values that look like integers, floats or booleans are written as JSON numbers
	and booleans, everything else is written as a string.

	The log directory, file name and minimum level are read, in order of precedence,
	from the command flags, the LOG_DIR, LOG_FILE and LOG_LEVEL environment variables
	and the configuration file.

	With --metrics-file the number of written records, by level and logger name,
	is saved in the Prometheus text format after the event is emitted.`

	emitCmdExample = `# Log an upload with two fields
	logfactory emit "User uploaded a file" user_id=123 filename=report.pdf

	# Log an error in a custom file
	logfactory emit --level error --log-file errors.log "Failed to process PDF" error="File not found"

	# Log an event and save the record count for the node exporter textfile collector
	logfactory emit --metrics-file logfactory.prom "User uploaded a file" user_id=123`
)

// EmitCmd returns the Cobra command that writes a log event through the process wide backend.
func EmitCmd() *cobra.Command {
	return emitCmd(logger.DefaultBackend())
}

// emitCmd builds the "emit" command writing through backend.
func emitCmd(backend *logger.Backend) *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:     emitCmdUsage,
		Short:   heredoc.Doc(emitCmdShort),
		Long:    heredoc.Doc(emitCmdLong),
		Example: heredoc.Doc(emitCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(cmd, args, backend)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}
