// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package contact validates and dispatches quote requests.
package contact

import (
	"net/mail"
	"strings"
)

// Field names as they appear in FieldErrors and the JSON form body.
const (
	FieldName                = "name"
	FieldCompany             = "company"
	FieldEmail               = "email"
	FieldCountry             = "country"
	FieldQuantity            = "quantity"
	FieldProductsDescription = "productsDescription"
	FieldPrivacy             = "privacy"
)

// Translation keys of the validation messages.
const (
	MsgRequired            = "contact.errors.required"
	MsgEmail               = "contact.errors.email"
	MsgProductsDescription = "contact.errors.products_description"
	MsgPrivacy             = "contact.errors.privacy"
)

// FormValues is a submitted quote request form.
type FormValues struct {
	Name                string `json:"name"`
	Company             string `json:"company"`
	Email               string `json:"email"`
	Country             string `json:"country"`
	Quantity            string `json:"quantity"`
	ProductsDescription string `json:"productsDescription"`
	Phone               string `json:"phone"`
	Application         string `json:"application"`
	Timeline            string `json:"timeline"`
	Requirements        string `json:"requirements"`
}

// Result is the outcome of Validate. FieldErrors maps a field name to a
// translation key and is empty when OK.
type Result struct {
	OK          bool              `json:"ok"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}

// Validate checks the form. Field checks, the empty-basket rule and the
// privacy rule all run, so one call reports every violation.
func Validate(v FormValues, basketIsEmpty, privacyAccepted bool) Result {
	errs := make(map[string]string)

	required := []struct {
		field string
		value string
	}{
		{FieldName, v.Name},
		{FieldCompany, v.Company},
		{FieldEmail, v.Email},
		{FieldCountry, v.Country},
		{FieldQuantity, v.Quantity},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs[r.field] = MsgRequired
		}
	}
	if _, missing := errs[FieldEmail]; !missing && !IsValidEmail(v.Email) {
		errs[FieldEmail] = MsgEmail
	}

	if basketIsEmpty && strings.TrimSpace(v.ProductsDescription) == "" {
		errs[FieldProductsDescription] = MsgProductsDescription
	}

	if !privacyAccepted {
		errs[FieldPrivacy] = MsgPrivacy
	}

	if len(errs) > 0 {
		return Result{FieldErrors: errs}
	}
	return Result{OK: true}
}

// IsValidEmail reports whether s is a bare address such as a@b.co. Display
// names and angle brackets are rejected.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}
