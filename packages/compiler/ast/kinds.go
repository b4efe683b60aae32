package ast

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Node kinds of the tree-sitter TSX grammar the compiler cares about.
const (
	KindProgram             = "program"
	KindImportStatement     = "import_statement"
	KindImportClause        = "import_clause"
	KindNamedImports        = "named_imports"
	KindImportSpecifier     = "import_specifier"
	KindNamespaceImport     = "namespace_import"
	KindExportStatement     = "export_statement"
	KindLexicalDeclaration  = "lexical_declaration"
	KindVariableDeclarator  = "variable_declarator"
	KindStatementBlock      = "statement_block"
	KindExpressionStatement = "expression_statement"

	KindFunctionDeclaration = "function_declaration"
	KindFunctionExpression  = "function_expression"
	KindFunction            = "function"
	KindArrowFunction       = "arrow_function"
	KindFormalParameters    = "formal_parameters"
	KindRequiredParameter   = "required_parameter"
	KindOptionalParameter   = "optional_parameter"

	KindIdentifier                 = "identifier"
	KindPropertyIdentifier         = "property_identifier"
	KindShorthandProperty          = "shorthand_property_identifier"
	KindShorthandPropertyPattern   = "shorthand_property_identifier_pattern"
	KindMemberExpression           = "member_expression"
	KindSubscriptExpression        = "subscript_expression"
	KindCallExpression             = "call_expression"
	KindArguments                  = "arguments"
	KindAssignmentExpression       = "assignment_expression"
	KindAugmentedAssignment        = "augmented_assignment_expression"
	KindUnaryExpression            = "unary_expression"
	KindObjectPattern              = "object_pattern"
	KindArrayPattern               = "array_pattern"
	KindPairPattern                = "pair_pattern"
	KindObjectAssignmentPattern    = "object_assignment_pattern"
	KindAssignmentPattern          = "assignment_pattern"
	KindRestPattern                = "rest_pattern"
	KindObject                     = "object"
	KindPair                       = "pair"
	KindComputedPropertyName       = "computed_property_name"
	KindString                     = "string"
	KindStringFragment             = "string_fragment"
	KindTemplateString             = "template_string"
	KindSpreadElement              = "spread_element"
	KindParenthesizedExpression    = "parenthesized_expression"

	KindJSXElement            = "jsx_element"
	KindJSXSelfClosingElement = "jsx_self_closing_element"
	KindJSXFragment           = "jsx_fragment"
	KindJSXExpression         = "jsx_expression"
	KindJSXAttribute          = "jsx_attribute"
	KindJSXOpeningElement     = "jsx_opening_element"
)

// IsJSX reports whether node is a JSX element, self-closing element, or
// fragment.
func IsJSX(node *sitter.Node) bool {
	switch node.Type() {
	case KindJSXElement, KindJSXSelfClosingElement, KindJSXFragment:
		return true
	}
	return false
}

// IsFunctionLike reports whether node declares a function body of its own.
func IsFunctionLike(node *sitter.Node) bool {
	switch node.Type() {
	case KindFunctionDeclaration, KindFunctionExpression, KindFunction, KindArrowFunction:
		return true
	}
	return false
}

// ContainsJSX reports whether any node in the subtree is a JSX element or
// fragment.
func ContainsJSX(node *sitter.Node) bool {
	found := false
	Walk(node, func(n *sitter.Node) bool {
		if found {
			return false
		}
		if IsJSX(n) {
			found = true
			return false
		}
		return true
	})
	return found
}

// CollectIdentifiers returns the de-duplicated set of identifier references
// within the subtree rooted at node. Shorthand object properties count as
// references; property names on member expressions do not (they are
// property_identifier nodes, a different kind).
func CollectIdentifiers(f *SourceFile, node *sitter.Node) map[string]bool {
	refs := make(map[string]bool)
	if node == nil {
		return refs
	}
	Walk(node, func(n *sitter.Node) bool {
		switch n.Type() {
		case KindIdentifier, KindShorthandProperty:
			refs[f.Text(n)] = true
		}
		return true
	})
	return refs
}

// RootIdentifier walks left through chained member and subscript accesses to
// the base identifier, e.g. state.items[0].tags -> state. Returns nil when
// the base is not a plain identifier.
func RootIdentifier(node *sitter.Node) *sitter.Node {
	for node != nil {
		switch node.Type() {
		case KindIdentifier:
			return node
		case KindMemberExpression, KindSubscriptExpression:
			node = node.ChildByFieldName("object")
		case KindParenthesizedExpression:
			if node.NamedChildCount() == 0 {
				return nil
			}
			node = node.NamedChild(0)
		default:
			return nil
		}
	}
	return nil
}
