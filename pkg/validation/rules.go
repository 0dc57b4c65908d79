package validation

// Rules maps a body field to its validator tag list.
type Rules map[string]string

// Messages maps "field.tag" or "tag" to a custom message. The placeholders
// :attribute and :param are replaced with the field name and the tag parameter.
type Messages map[string]string

// RuleSet supplies rules and messages for create (isUpdate=false) and update requests.
type RuleSet interface {
	Rules(isUpdate bool) Rules
	Messages(isUpdate bool) Messages
}

// StaticRules is a RuleSet backed by fixed maps.
type StaticRules struct {
	Create Rules
	Update Rules
	Custom Messages
}

var _ RuleSet = StaticRules{}

// Rules returns Update for updates and Create otherwise.
func (s StaticRules) Rules(isUpdate bool) Rules {
	if isUpdate {
		return s.Update
	}
	return s.Create
}

// Messages returns Custom for both modes.
func (s StaticRules) Messages(bool) Messages {
	return s.Custom
}
