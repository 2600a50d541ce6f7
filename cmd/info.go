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

func PrintFirmwareInfo(firmwarePath string) {
	fw, err := rt4d.LoadFirmware(firmwarePath)
	if err != nil {
		log.Fatalf("could not load firmware: %v", err)
	}

	fmt.Printf("Firmware size: %d (%#04x) bytes\n", fw.RawSize(), fw.RawSize())
	fmt.Printf("Padded size:   %d (%#04x) bytes\n", fw.Size(), fw.Size())
	fmt.Printf("Padding:       %d bytes\n", fw.Padding())
	fmt.Printf("Write blocks:  %d x %d bytes\n", len(fw.Chunks()), rt4d.WriteBlockSize)
	fmt.Printf("CRC16:         %#04x\n", fw.CRC16())
}

var infoCmd = &cobra.Command{
	Use:   "info <firmware file>",
	Short: "Inspect a firmware file without touching the radio",
	Long: `Loads a raw firmware image and prints how it would be flashed: its
size, the padding that would be appended, the number of write blocks
and a CRC16 fingerprint of the file content.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		PrintFirmwareInfo(args[0])
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
