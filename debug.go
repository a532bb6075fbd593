/*
 * Copyright © 2020, G.Ralph Kuntz, MD.
 *
 * Licensed under the Apache License, Version 2.0(the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIC
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package qrdecode

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/browser"
)

// WithVersionRange restricts corner building to versions in [min,
// max]. It lives in decodeoptions.go alongside the other With*
// functions; this file only consumes decodeOptions.debugSVGPath and
// .openDebugInBrowser.

// writeDebugSVG renders one SVG file per corner attempt, showing the
// binarized image grid (the same path-based module rendering the
// teacher's ToSVGString built for the encoder's output grid), the
// three finder centers, and a status line: version, EC level and mask
// when the corner decoded, "rejected" otherwise. The sampled module
// matrix itself is not drawn. info is nil when the corner failed to
// decode.
func (d *Decoder) writeDebugSVG(cn *corner, grid *Grid, info *decodeInfo) {
	svg, name := renderCornerSVG(cn, grid, info)

	path := filepath.Join(d.opts.debugSVGPath, name)
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		return
	}
	if d.opts.openDebugInBrowser {
		browser.OpenFile(path)
	}
}

func renderCornerSVG(cn *corner, grid *Grid, info *decodeInfo) (svg, filename string) {
	const border = 4
	var sb strings.Builder

	sb.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&sb, "<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" viewBox=\"0 0 %[1]d %[1]d\" stroke=\"none\">\n",
		grid.Width+border*2)
	sb.WriteString("\t<rect width=\"100%\" height=\"100%\" fill=\"#FFFFFF\"/>\n")

	sb.WriteString("\t<path d=\"")
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if grid.at(x, y) {
				fmt.Fprintf(&sb, "M%d,%dh1v1h-1z", x+border, y+border)
			}
		}
	}
	sb.WriteString("\" fill=\"#000000\"/>\n")

	for _, f := range []*finderCandidate{cn.topLeft, cn.topRight, cn.bottomLeft} {
		fmt.Fprintf(&sb, "\t<circle cx=\"%g\" cy=\"%g\" r=\"3\" fill=\"none\" stroke=\"#FF0000\" stroke-width=\"0.5\"/>\n",
			f.centerX()+border, f.centerY()+border)
	}

	status := "rejected"
	if info != nil {
		status = fmt.Sprintf("version=%d ecl=%s mask=%d", info.version, info.ecl, info.mask)
	}
	fmt.Fprintf(&sb, "\t<text x=\"%d\" y=\"%d\" font-size=\"6\" fill=\"#FF0000\">%s</text>\n", border, grid.Height+border+6, status)
	sb.WriteString("</svg>\n")

	name := "corner-" + strconv.FormatInt(int64(cn.topLeft.c1), 10) + "-" + strconv.FormatInt(int64(cn.topLeft.row), 10) + ".svg"
	return sb.String(), name
}
