// Package universe builds the list of tickers to scan.
package universe

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// DefaultTickers is the FTSE MIB constituent list scanned when no symbols
// file adds to it.
var DefaultTickers = []string{
	"A2A.MI", "AMP.MI", "AZM.MI", "BGN.MI", "BMED.MI", "BMPS.MI", "BAMI.MI",
	"BPSO.MI", "BPE.MI", "BRE.MI", "BC.MI", "BZU.MI", "CPR.MI", "CE.MI",
	"DIA.MI", "ENEL.MI", "ENI.MI", "ERG.MI", "RACE.MI", "FBK.MI", "G.MI",
	"HER.MI", "IP.MI", "ISP.MI", "INW.MI", "IG.MI", "IVG.MI", "LDO.MI",
	"MB.MI", "MONC.MI", "PIRC.MI", "PST.MI", "PRY.MI", "REC.MI", "SPM.MI",
	"SRG.MI", "STMMI.MI", "TIT.MI", "TEN.MI", "TRN.MI", "UCG.MI", "UNI.MI",
}

// Load returns the default tickers merged with the symbols file at path,
// deduplicated and sorted. A missing file is not an error.
func Load(path string) ([]string, error) {
	set := make(map[string]struct{}, len(DefaultTickers))
	for _, t := range DefaultTickers {
		set[t] = struct{}{}
	}

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			extra, err := Parse(f)
			if err != nil {
				return nil, fmt.Errorf("read symbols file %s: %w", path, err)
			}
			for _, t := range extra {
				set[t] = struct{}{}
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("open symbols file: %w", err)
		}
	}

	tickers := make([]string, 0, len(set))
	for t := range set {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers, nil
}

// Parse reads one symbol per line, skipping blank lines and lines starting
// with '#', and uppercases each symbol.
func Parse(r io.Reader) ([]string, error) {
	var symbols []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		symbols = append(symbols, strings.ToUpper(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return symbols, nil
}
