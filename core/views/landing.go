/*
SPDX-License-Identifier: Apache-2.0

Copyright 2026 The Command Center Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package views

import "github.com/google/safehtml"

// LandingViewModel is the dashboard index.
type LandingViewModel struct {
	Title  string
	Tables []TableInfo
}

// TableInfo summarizes one grid on the landing page.
type TableInfo struct {
	Name          string
	Title         string
	Description   string
	RowCount      int
	SelectedCount int
	Highlighted   string
	Current       bool
	URL           safehtml.URL
	CardsURL      safehtml.URL
	VirtualURL    safehtml.URL
}

// GridPage is a grid together with the navigation around it.
type GridPage struct {
	Grid   GridViewModel
	Tables []TableInfo

	TableLayoutURL safehtml.URL
	CardLayoutURL  safehtml.URL
	PlainURL       safehtml.URL
	VirtualURL     safehtml.URL
	Scroll         int
}
