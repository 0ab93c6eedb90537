package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkvkit/mkvstream/av"
	"github.com/mkvkit/mkvstream/av/avutil"
	"github.com/mkvkit/mkvstream/format/mkv"
)

var infoLoad bool

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print segment headers, tracks and cluster layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := avutil.Open(args[0])
		if err != nil {
			return err
		}

		if seg, ok := c.(*mkv.Segment); ok && seg.Title() != "" {
			fmt.Printf("title:    %s\n", seg.Title())
		}
		if d, err := c.Duration(); err == nil {
			fmt.Printf("duration: %s\n", d)
		} else if errors.Is(err, av.ErrNoDuration) {
			fmt.Println("duration: unknown")
		} else {
			return err
		}

		for _, t := range c.Tracks() {
			fmt.Printf("track %d:  %s codec=%s", t.Number(), t.Type(), t.CodecID())
			if t.Name() != "" {
				fmt.Printf(" name=%q", t.Name())
			}
			fmt.Println()
		}

		if infoLoad {
			for c.Unparsed() > 0 {
				if err := c.LoadNextCluster(); err != nil {
					if errors.Is(err, av.ErrNeedMoreData) {
						fmt.Println("clusters: source truncated, partial count")
						break
					}
					return err
				}
			}
		}
		fmt.Printf("clusters: %d loaded, %d bytes unparsed\n", c.ClusterCount(), c.Unparsed())
		if c.Cues().IsPresent() {
			fmt.Println("cues:     present")
		} else {
			fmt.Println("cues:     absent")
		}
		return nil
	},
}

func init() {
	infoCmd.Flags().BoolVarP(&infoLoad, "load", "l", false, "load every cluster before reporting")
	rootCmd.AddCommand(infoCmd)
}
