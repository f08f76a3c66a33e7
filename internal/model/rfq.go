// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// RFQProduct is a line in the quote-request basket. It is a copy of the
// catalog data at the time it was added, not a reference.
type RFQProduct struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Grade string `json:"grade,omitempty"`
}
