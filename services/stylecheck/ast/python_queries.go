// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ast

// Python Tree-sitter Node Types
//
// Reference: https://github.com/tree-sitter/tree-sitter-python/blob/master/src/grammar.json
const (
	pyNodeModule              = "module"
	pyNodeFunctionDefinition  = "function_definition"
	pyNodeClassDefinition     = "class_definition"
	pyNodeIfStatement         = "if_statement"
	pyNodeForStatement        = "for_statement"
	pyNodeWhileStatement      = "while_statement"
	pyNodeWithStatement       = "with_statement"
	pyNodeAsyncKeyword        = "async"
	pyNodeAsyncFunctionDefine = "async_function_definition" // older grammars only
)

// pythonBlockKinds maps tree-sitter statement types to block node kinds.
//
// Types absent from this map never become nodes; their block descendants
// are attached to the nearest enclosing block node instead.
var pythonBlockKinds = map[string]NodeKind{
	pyNodeFunctionDefinition: NodeFunction,
	pyNodeClassDefinition:    NodeClass,
	pyNodeIfStatement:        NodeIf,
	pyNodeForStatement:       NodeFor,
	pyNodeWhileStatement:     NodeWhile,
	pyNodeWithStatement:      NodeWith,
}
