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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hamtools/rt4dflash/rt4d"
)

func ProbeRadio(portName string) {
	transport, err := rt4d.OpenSerialTransport(portName)
	if err != nil {
		log.Fatalf("could not open serial port %s: %v", portName, err)
	}
	defer transport.Close()

	session := rt4d.NewSession(transport,
		rt4d.WithReadTimeout(readTimeout),
		rt4d.WithTraceFrames(traceFrames),
	)

	if !session.DetectBootloaderMode() {
		log.Fatal("radio not in flashing mode, or not connected")
	}

	fmt.Println("Radio is in flashing mode.")
}

var probeCmd = &cobra.Command{
	Use:   "probe <port>",
	Short: "Check whether the radio is in flashing mode",
	Long: `Sends a single read probe to the radio and reports whether it answered
from its bootloader. Useful to verify cabling and flashing mode before
an actual flash run; nothing is erased or written.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ProbeRadio(args[0])
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
