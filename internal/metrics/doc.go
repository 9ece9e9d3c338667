// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package metrics exposes prometheus collectors fed by the logging pipeline.
package metrics
