// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"
)

// SortDataset sorts the result set in place per the comma-delimited spec.
// A leading "-" on a field sorts descending; a leading "!" makes the string
// comparison case sensitive.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	fields := strings.Split(spec, ",")

	sort.SliceStable(resultSet, func(one, two int) bool {

		for _, field := range fields {
			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}

			oneValue := resultSet[one][field]
			twoValue := resultSet[two][field]

			// Convert to integers if possible
			oneInt, oneOk := oneValue.(float64)
			twoInt, twoOk := twoValue.(float64)

			if oneOk && twoOk {
				if int(oneInt) != int(twoInt) {
					if ascending {
						return int(oneInt) < int(twoInt)
					}
					return int(oneInt) > int(twoInt)
				}
				continue
			}

			// Fall back to string comparison which can also handle bools.
			oneStr := InterfaceToString(oneValue)
			twoStr := InterfaceToString(twoValue)

			compareOneStr := oneStr
			compareTwoStr := twoStr
			if !caseSensitive {
				compareOneStr = strings.ToLower(oneStr)
				compareTwoStr = strings.ToLower(twoStr)
			}

			if compareOneStr != compareTwoStr {
				if ascending {
					return compareOneStr < compareTwoStr
				}
				return compareOneStr > compareTwoStr
			}

		}
		return false
	})
}
