// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders a chat transcript to a file format.
//
// Two formats are supported: Markdown for reading and sharing, and
// JSON for a faithful dump of the view model that other tools can
// consume. The chat screen's /export command picks the exporter from
// the requested file extension.
package export
