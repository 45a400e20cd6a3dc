// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package matcher

// Options selects the tiers of one query.
type Options struct {
	Clean                   bool   `json:"clean" form:"clean"`
	CheckHistory            bool   `json:"check_history" form:"check_history"`
	CheckPlaces             bool   `json:"check_wp" form:"check_wp"`
	CheckNeighbourhoods     bool   `json:"check_wb" form:"check_wb"`
	CheckVariants           bool   `json:"check_variants" form:"check_variants"`
	CheckFuzzy              bool   `json:"check_fuzzy" form:"check_fuzzy"`
	CheckMunicipalityFuzzy  bool   `json:"check_gm_fuzzy" form:"check_gm_fuzzy"`
	CheckHistoryFuzzy       bool   `json:"check_history_fuzzy" form:"check_history_fuzzy"`
	CheckPlaceFuzzy         bool   `json:"check_wp_fuzzy" form:"check_wp_fuzzy"`
	CheckNeighbourhoodFuzzy bool   `json:"check_wb_fuzzy" form:"check_wb_fuzzy"`
	Delimiters              bool   `json:"delimiters" form:"delimiters"`
	Province                string `json:"province,omitempty" form:"province"`
	Date                    string `json:"date,omitempty" form:"date"`
	Threshold               int    `json:"threshold_fuzzy,omitempty" form:"threshold_fuzzy"`
}

// DefaultOptions enables every tier. Splitting on delimiters stays off.
func DefaultOptions() Options {
	return Options{
		Clean:                   true,
		CheckHistory:            true,
		CheckPlaces:             true,
		CheckNeighbourhoods:     true,
		CheckVariants:           true,
		CheckFuzzy:              true,
		CheckMunicipalityFuzzy:  true,
		CheckHistoryFuzzy:       true,
		CheckPlaceFuzzy:         true,
		CheckNeighbourhoodFuzzy: true,
	}
}

// effective applies the switches that imply others: a disabled exact tier
// disables its fuzzy tier, and CheckFuzzy gates every fuzzy tier.
func (o Options) effective(defaultThreshold int) Options {
	if !o.CheckHistory {
		o.CheckHistoryFuzzy = false
	}
	if !o.CheckPlaces {
		o.CheckPlaceFuzzy = false
	}
	if !o.CheckNeighbourhoods {
		o.CheckNeighbourhoodFuzzy = false
	}
	if !o.CheckFuzzy {
		o.CheckMunicipalityFuzzy = false
		o.CheckHistoryFuzzy = false
		o.CheckPlaceFuzzy = false
		o.CheckNeighbourhoodFuzzy = false
	}
	o.CheckFuzzy = o.CheckMunicipalityFuzzy || o.CheckHistoryFuzzy || o.CheckPlaceFuzzy || o.CheckNeighbourhoodFuzzy
	if o.Threshold <= 0 {
		o.Threshold = defaultThreshold
	}
	return o
}

// flags packs the boolean switches for the cache key.
func (o Options) flags() uint16 {
	var f uint16
	for i, on := range []bool{
		o.Clean,
		o.CheckHistory,
		o.CheckPlaces,
		o.CheckNeighbourhoods,
		o.CheckVariants,
		o.CheckMunicipalityFuzzy,
		o.CheckHistoryFuzzy,
		o.CheckPlaceFuzzy,
		o.CheckNeighbourhoodFuzzy,
		o.Delimiters,
	} {
		if on {
			f |= 1 << i
		}
	}
	return f
}
