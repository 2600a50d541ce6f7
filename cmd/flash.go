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

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hamtools/rt4dflash/rt4d"
)

func FlashFirmware(portName string, firmwarePath string) {
	fw, err := rt4d.LoadFirmware(firmwarePath)
	if err != nil {
		log.Fatalf("could not load firmware: %v", err)
	}
	fmt.Printf("Firmware size %d (%#04x) bytes, CRC %#04x\n", fw.RawSize(), fw.RawSize(), fw.CRC16())

	transport, err := rt4d.OpenSerialTransport(portName)
	if err != nil {
		log.Fatalf("could not open serial port %s: %v", portName, err)
	}
	defer transport.Close()

	bar := progressbar.NewOptions(fw.Size(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Writing"),
		progressbar.OptionShowBytes(true),
	)

	session := rt4d.NewSession(transport,
		rt4d.WithReadTimeout(readTimeout),
		rt4d.WithTraceFrames(traceFrames),
		rt4d.WithProgress(func(p rt4d.FlashProgress) {
			if p.OK {
				bar.Add(p.ChunkSize)
			}
		}),
	)

	if !session.DetectBootloaderMode() {
		log.Fatal("radio not in flashing mode, or not connected")
	}

	if !session.EraseFlash() {
		log.Fatal("could not erase radio memory")
	}

	fmt.Println("Flashing...")
	report := session.FlashImage(fw)
	if !report.Success {
		fmt.Println()
		log.Fatalf("not all bytes were written: %d/%d", report.BytesWritten, fw.Size())
	}
	bar.Finish()
	fmt.Println()

	fmt.Printf("Written a total of %d (%#x) bytes (%d bytes padding). All OK!\n",
		report.BytesWritten, report.BytesWritten, report.PaddingAdded)
}

var flashCmd = &cobra.Command{
	Use:   "flash <port> <firmware file>",
	Short: "Write a firmware image onto the radio",
	Long: `Writes a raw firmware image onto a radio in flashing mode.

The image is zero-padded to the full flash size, both flash banks are
erased, and the padded image is then transferred in fixed size blocks.
A failed erase or an unacknowledged block aborts the whole run; the
radio's flash content is undefined afterwards and a new run has to
start over from the probe.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		FlashFirmware(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(flashCmd)
}
