// mkvseek inspects Matroska and WebM files and plays single tracks back
// through the position engine, to a file or over a websocket.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mkvkit/mkvstream/format"
	"github.com/mkvkit/mkvstream/format/mkv"
	"github.com/mkvkit/mkvstream/format/wsraw"
	"github.com/mkvkit/mkvstream/stream"
)

var rootCmd = &cobra.Command{
	Use:           "mkvseek",
	Short:         "Inspect and play back tracks of Matroska and WebM files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
			stream.Debug = true
			mkv.Debug = true
			wsraw.Debug = true
		}
	},
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	format.RegisterAll()
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
