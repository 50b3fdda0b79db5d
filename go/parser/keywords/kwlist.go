/*
 * EdgeQL Keyword Lists
 *
 * The three keyword tiers of the EdgeQL grammar. Every entry is lowercase
 * and appears in exactly one tier; init() in keywords.go refuses to load
 * a table that breaks either rule.
 *
 * Moving a word between tiers is a language change: promoting an
 * unreserved word breaks every query that used it as a bare name.
 */

package keywords

// unreservedKeywords have a fixed meaning in some grammar positions but
// remain usable as plain identifiers everywhere else.
var unreservedKeywords = [...]string{
	"abstract",
	"after",
	"alias",
	"allow",
	"all",
	"annotation",
	"applied",
	"as",
	"asc",
	"assignment",
	"before",
	"by",
	"cardinality",
	"cast",
	"config",
	"conflict",
	"constraint",
	"current",
	"database",
	"ddl",
	"deferrable",
	"deferred",
	"delegated",
	"desc",
	"emit",
	"explicit",
	"expression",
	"extension",
	"final",
	"first",
	"from",
	"function",
	"implicit",
	"index",
	"infix",
	"inheritable",
	"into",
	"isolation",
	"json",
	"last",
	"link",
	"migration",
	"multi",
	"named",
	"object",
	"of",
	"oids",
	"on",
	"only",
	"onto",
	"operator",
	"optionality",
	"overloaded",
	"owned",
	"package",
	"postfix",
	"prefix",
	"property",
	"proposed",
	"pseudo",
	"read",
	"reject",
	"rename",
	"required",
	"repeatable",
	"restrict",
	"role",
	"roles",
	"savepoint",
	"scalar",
	"schema",
	"sdl",
	"serializable",
	"session",
	"single",
	"source",
	"superuser",
	"system",
	"target",
	"ternary",
	"text",
	"then",
	"to",
	"transaction",
	"type",
	"unless",
	"using",
	"verbose",
	"version",
	"view",
	"write",
}

// futureReservedKeywords are not used by any production yet. They are
// rejected as bare identifiers today so that a later grammar can give
// them a meaning without breaking new code.
var futureReservedKeywords = [...]string{
	"analyze",
	"anyarray",
	"begin",
	"case",
	"check",
	"deallocate",
	"discard",
	"do",
	"end",
	"execute",
	"explain",
	"fetch",
	"get",
	"global",
	"grant",
	"import",
	"listen",
	"load",
	"lock",
	"match",
	"move",
	"notify",
	"prepare",
	"partition",
	"policy",
	"raise",
	"refresh",
	"reindex",
	"revoke",
	"over",
	"when",
	"window",
}

// currentReservedKeywords are used by the grammar today and can never be
// bare identifiers. The double-underscore names are ordinary members of
// this tier.
var currentReservedKeywords = [...]string{
	"__source__",
	"__subject__",
	"__type__",
	"__std__",
	"__edgedbsys__",
	"__edgedbtpl__",
	"abort",
	"alter",
	"and",
	"anytuple",
	"anytype",
	"commit",
	"configure",
	"create",
	"declare",
	"delete",
	"describe",
	"detached",
	"distinct",
	"drop",
	"else",
	"empty",
	"exists",
	"extending",
	"false",
	"filter",
	"for",
	"group",
	"if",
	"ilike",
	"in",
	"insert",
	"introspect",
	"is",
	"like",
	"limit",
	"module",
	"not",
	"offset",
	"optional",
	"or",
	"order",
	"populate",
	"release",
	"reset",
	"rollback",
	"select",
	"set",
	"start",
	"true",
	"typeof",
	"update",
	"union",
	"variadic",
	"with",
}
