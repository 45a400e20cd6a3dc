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

package standardizer

// DefaultDelimiters are the characters a location is split on.
var DefaultDelimiters = []string{"|", "/", "&", "(", ")", ","}

// DefaultRemove lists country and region words that never help a lookup.
// Province names are added by the caller.
var DefaultRemove = []string{
	"the netherlands",
	"nederland",
	"netherlands",
	"holland",
	"gemeente",
	"nl",
	"europe",
	"europa",
}

// DefaultReplace maps telephone area codes to the place they serve.
var DefaultReplace = map[string]string{
	"010": "rotterdam",
	"013": "tilburg",
	"020": "amsterdam",
	"023": "haarlem",
	"024": "nijmegen",
	"026": "arnhem",
	"030": "utrecht",
	"040": "eindhoven",
	"043": "maastricht",
	"050": "groningen",
	"053": "enschede",
	"058": "leeuwarden",
	"070": "den haag",
	"073": "den bosch",
	"076": "breda",
}

// DefaultRules holds the Bergen split: two municipalities share the name.
var DefaultRules = []Rule{
	{
		Prefix: "bergen",
		Hints: []Hint{
			{Substrings: []string{"n.h.", "(nh", " nh", "noord-holland"}, Literal: "Bergen (NH.)"},
			{Substrings: []string{"(l)", "(l.)", " l ", "limburg"}, Literal: "Bergen (L.)"},
		},
	},
}

// DefaultConfig returns the built-in word lists.
func DefaultConfig() Config {
	replace := make(map[string]string, len(DefaultReplace))
	for k, v := range DefaultReplace {
		replace[k] = v
	}
	return Config{
		Remove:     append([]string(nil), DefaultRemove...),
		Replace:    replace,
		Delimiters: append([]string(nil), DefaultDelimiters...),
		Rules:      append([]Rule(nil), DefaultRules...),
	}
}
