/*
 * Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package onlineparser

// Kind identifies the syntactic construct a [State] currently has open.
type Kind int

const (
	KindNone Kind = iota

	// Special kinds.
	KindInvalid
	KindComment

	// Executable documents.
	KindDocument
	KindDefinition
	KindShortQuery
	KindQuery
	KindMutation
	KindSubscription
	KindVariableDefinitions
	KindVariableDefinition
	KindVariable
	KindDefaultValue
	KindSelectionSet
	KindSelection
	KindAliasedField
	KindField
	KindArguments
	KindArgument
	KindFragmentSpread
	KindInlineFragment
	KindFragmentDefinition
	KindTypeCondition

	// Values.
	KindValue
	KindNumberValue
	KindStringValue
	KindBooleanValue
	KindNullValue
	KindEnumValue
	KindListValue
	KindObjectValue
	KindObjectField

	// Type references.
	KindType
	KindListType
	KindNonNullType
	KindNamedType

	KindDirective

	// Type system definitions.
	KindDirectiveDef
	KindInterfaceDef
	KindImplements
	KindDirectiveLocation
	KindSchemaDef
	KindOperationTypeDef
	KindScalarDef
	KindObjectTypeDef
	KindFieldDef
	KindArgumentsDef
	KindInputValueDef
	KindUnionDef
	KindUnionMember
	KindEnumDef
	KindEnumValueDef
	KindInputDef
	KindExtendDef
	KindExtensionDefinition

	kindCount
)

var kindNames = [kindCount]string{
	KindNone:                "",
	KindInvalid:             "Invalid",
	KindComment:             "Comment",
	KindDocument:            "Document",
	KindDefinition:          "Definition",
	KindShortQuery:          "ShortQuery",
	KindQuery:               "Query",
	KindMutation:            "Mutation",
	KindSubscription:        "Subscription",
	KindVariableDefinitions: "VariableDefinitions",
	KindVariableDefinition:  "VariableDefinition",
	KindVariable:            "Variable",
	KindDefaultValue:        "DefaultValue",
	KindSelectionSet:        "SelectionSet",
	KindSelection:           "Selection",
	KindAliasedField:        "AliasedField",
	KindField:               "Field",
	KindArguments:           "Arguments",
	KindArgument:            "Argument",
	KindFragmentSpread:      "FragmentSpread",
	KindInlineFragment:      "InlineFragment",
	KindFragmentDefinition:  "FragmentDefinition",
	KindTypeCondition:       "TypeCondition",
	KindValue:               "Value",
	KindNumberValue:         "NumberValue",
	KindStringValue:         "StringValue",
	KindBooleanValue:        "BooleanValue",
	KindNullValue:           "NullValue",
	KindEnumValue:           "EnumValue",
	KindListValue:           "ListValue",
	KindObjectValue:         "ObjectValue",
	KindObjectField:         "ObjectField",
	KindType:                "Type",
	KindListType:            "ListType",
	KindNonNullType:         "NonNullType",
	KindNamedType:           "NamedType",
	KindDirective:           "Directive",
	KindDirectiveDef:        "DirectiveDef",
	KindInterfaceDef:        "InterfaceDef",
	KindImplements:          "Implements",
	KindDirectiveLocation:   "DirectiveLocation",
	KindSchemaDef:           "SchemaDef",
	KindOperationTypeDef:    "OperationTypeDef",
	KindScalarDef:           "ScalarDef",
	KindObjectTypeDef:       "ObjectTypeDef",
	KindFieldDef:            "FieldDef",
	KindArgumentsDef:        "ArgumentsDef",
	KindInputValueDef:       "InputValueDef",
	KindUnionDef:            "UnionDef",
	KindUnionMember:         "UnionMember",
	KindEnumDef:             "EnumDef",
	KindEnumValueDef:        "EnumValueDef",
	KindInputDef:            "InputDef",
	KindExtendDef:           "ExtendDef",
	KindExtensionDefinition: "ExtensionDefinition",
}

// String returns the grammar rule name of the kind.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Kind(?)"
	}
	return kindNames[k]
}

// Style is the lexical style tag assigned to a scanned token.
type Style string

const (
	StyleWhitespace  Style = "ws"
	StyleInvalidChar Style = "invalidchar"
	StyleComment     Style = "comment"
	StylePunctuation Style = "punctuation"
	StyleKeyword     Style = "keyword"
	StyleDef         Style = "def"
	StyleProperty    Style = "property"
	StyleQualifier   Style = "qualifier"
	StyleAttribute   Style = "attribute"
	StyleVariable    Style = "variable"
	StyleNumber      Style = "number"
	StyleString      Style = "string"
	StyleString2     Style = "string-2"
	StyleBuiltin     Style = "builtin"
	StyleAtom        Style = "atom"
	StyleMeta        Style = "meta"
)

// TokenKind classifies a lexed token.
type TokenKind int

const (
	TokenName TokenKind = iota + 1
	TokenPunctuation
	TokenNumber
	TokenString
	TokenComment
)

// Token is a single lexed token.
type Token struct {
	Kind  TokenKind
	Value string
}
