// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

// Buyer profile field names.
const (
	FieldAgencyName  = "Agency Name"
	FieldAgencyType  = "Agency Type"
	FieldProductName = "Product Name"
	FieldState       = "State"
)

// Grant program field names.
const (
	FieldGrantProgramName    = "Grant Program Name"
	FieldAdministeringAgency = "Administering Agency"
	FieldPurpose             = "Purpose"
	FieldApplicationDeadline = "Application Deadline"
	FieldAwardAmountRange    = "Award Amount Range"
	FieldEligibleExpenses    = "Eligible Equipment/Expenses"
	FieldFocusAreas          = "Focus Areas"
	FieldEligibleApplicants  = "Eligible Applicants"
)

// KeywordFields lists the grant fields inspected for keyword matches, in order.
var KeywordFields = []string{
	FieldEligibleExpenses,
	FieldPurpose,
	FieldFocusAreas,
	FieldEligibleApplicants,
}

// Display defaults used when a record lacks a field shown to the user.
const (
	DefaultProgramName = "Unknown Program"
	DefaultDescription = "No Description"
	DefaultAgency      = "Unknown Agency"
)
