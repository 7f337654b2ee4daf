/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package llm

import "errors"

var (
	ErrConfigIncomplete = errors.New("Ollama configuration incomplete: OLLAMA_URL and OLLAMA_MODEL must be set")
	ErrEmptyResponse    = errors.New("Ollama response contained no choices")
)
