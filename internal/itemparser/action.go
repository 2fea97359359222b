package itemparser

// Action selects which lexical construct a Parser run will attempt to read. The caller chooses
// one before every call to Execute via SetAction; the Parser has no notion of what comes next.
type Action uint8

const (
	// ActionNone is the zero value; Execute panics if called before SetAction.
	ActionNone Action = iota

	// ActionReadItem classifies the next token sentinel, skipping leading whitespace first when
	// OptionIgnoreLeadingWhitespace or OptionSynchronization is set.
	ActionReadItem

	// ActionReadName reads an XML Name (NameStartChar followed by NameChars).
	ActionReadName

	// ActionReadPiValue reads processing-instruction data up to and including the closing "?>".
	ActionReadPiValue

	// ActionReadDocumentTypeValue reads a DOCTYPE declaration's content up to the closing '>'.
	ActionReadDocumentTypeValue

	// ActionReadCommentText reads comment text up to and including the closing "-->".
	ActionReadCommentText

	// ActionReadElementStartOfContent classifies what follows a start tag's name or an attribute.
	ActionReadElementStartOfContent

	// ActionReadElementEndEmpty reads the literal "/>" that closes an empty element.
	ActionReadElementEndEmpty

	// ActionReadAttributeValue reads "=" + quote + value + matching quote.
	ActionReadAttributeValue
)

// String returns the name of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "ActionNone"
	case ActionReadItem:
		return "ActionReadItem"
	case ActionReadName:
		return "ActionReadName"
	case ActionReadPiValue:
		return "ActionReadPiValue"
	case ActionReadDocumentTypeValue:
		return "ActionReadDocumentTypeValue"
	case ActionReadCommentText:
		return "ActionReadCommentText"
	case ActionReadElementStartOfContent:
		return "ActionReadElementStartOfContent"
	case ActionReadElementEndEmpty:
		return "ActionReadElementEndEmpty"
	case ActionReadAttributeValue:
		return "ActionReadAttributeValue"
	default:
		panic("itemparser: unknown action")
	}
}

// Options configure how an Action's run begins.
type Options uint8

const (
	// OptionNone runs the action with no leading adjustment.
	OptionNone Options = 0

	// OptionIgnoreLeadingWhitespace skips XML whitespace before the primary item.
	OptionIgnoreLeadingWhitespace Options = 1 << 0

	// OptionSynchronization is a separate bit that currently behaves exactly like
	// OptionIgnoreLeadingWhitespace: only XML whitespace is skipped. Characters that are neither
	// whitespace nor a valid start for the requested Action are not skipped.
	OptionSynchronization Options = 1 << 1
)

// Status is the outcome of an Execute call.
type Status uint8

const (
	// StatusNeedMoreData means the buffer does not yet hold enough bytes to finish the run.
	StatusNeedMoreData Status = iota

	// StatusSuccess means the run completed; the result accessors hold valid data.
	StatusSuccess

	// StatusError means the run hit a syntax violation; the Parser is latched until SetAction.
	StatusError
)

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case StatusNeedMoreData:
		return "StatusNeedMoreData"
	case StatusSuccess:
		return "StatusSuccess"
	case StatusError:
		return "StatusError"
	default:
		panic("itemparser: unknown status")
	}
}

// ItemKind classifies the sentinel ActionReadItem found.
type ItemKind uint8

const (
	// ItemKindNone is the zero value, used for actions other than ActionReadItem.
	ItemKindNone ItemKind = iota

	// ItemKindProcessingInstruction means "<?" was seen; the token parser determines whether it
	// upgrades to an XML declaration once the target name is read.
	ItemKindProcessingInstruction

	// ItemKindComment means "<!--" was seen (fully consumed).
	ItemKindComment

	// ItemKindCData means "<![CDATA[" was seen (fully consumed).
	ItemKindCData

	// ItemKindDocumentType means "<!" followed by something other than "--" or "[CDATA[" was seen;
	// only the "<!" prefix is consumed, leaving the "DOCTYPE" keyword for the DocumentType parser.
	ItemKindDocumentType

	// ItemKindEndOfElement means "</" was seen (fully consumed).
	ItemKindEndOfElement

	// ItemKindStartOfElement means "<" followed by a NameStartChar was seen; only "<" is consumed.
	ItemKindStartOfElement
)

// String returns the name of the item kind.
func (k ItemKind) String() string {
	switch k {
	case ItemKindNone:
		return "ItemKindNone"
	case ItemKindProcessingInstruction:
		return "ItemKindProcessingInstruction"
	case ItemKindComment:
		return "ItemKindComment"
	case ItemKindCData:
		return "ItemKindCData"
	case ItemKindDocumentType:
		return "ItemKindDocumentType"
	case ItemKindEndOfElement:
		return "ItemKindEndOfElement"
	case ItemKindStartOfElement:
		return "ItemKindStartOfElement"
	default:
		panic("itemparser: unknown item kind")
	}
}

// ContentTerm classifies the terminator ActionReadElementStartOfContent found.
type ContentTerm uint8

const (
	// ContentTermNone is the zero value, used before a successful run.
	ContentTermNone ContentTerm = iota

	// ContentTermAttribute means the terminator is a NameStartChar (not consumed); the caller
	// should run ActionReadName next to read the attribute name.
	ContentTermAttribute

	// ContentTermEmptyElement means the terminator is '/' (not consumed); the caller should run
	// ActionReadElementEndEmpty next.
	ContentTermEmptyElement

	// ContentTermEndOfStartTag means '>' was seen and consumed; the start tag is complete.
	ContentTermEndOfStartTag
)
