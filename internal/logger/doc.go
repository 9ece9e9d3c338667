// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger configures the process logging once and hands out named loggers.
// Every record goes through a processor pipeline that renders it as a single JSON
// line, written to the console and to a timestamped file under the log directory.
package logger
