// Copyright © 2026 rt4dflash authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	traceFrames bool
	readTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "rt4dflash",
	Short: "Firmware flasher for the RT-4D handheld radio and compatible clones",
	Long: `rt4dflash talks to the serial bootloader of the RT-4D handheld radio
(and compatible clones) to write a firmware image into the radio's
internal flash. The radio has to be put into flashing mode manually
before running any command that touches the device.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&traceFrames, "trace", false, "hex dump raw frame traffic")
	rootCmd.PersistentFlags().DurationVar(&readTimeout, "timeout", 5*time.Second, "how long to wait for each bootloader response")
}
