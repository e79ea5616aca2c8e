package kernel

type RunID string

func NewRunID(id string) RunID { return RunID(id) }
func (r RunID) String() string { return string(r) }
func (r RunID) IsEmpty() bool  { return string(r) == "" }

type TemplateID string

func NewTemplateID(id string) TemplateID { return TemplateID(id) }
func (t TemplateID) String() string      { return string(t) }
func (t TemplateID) IsEmpty() bool       { return string(t) == "" }

type ItemID string

func NewItemID(id string) ItemID { return ItemID(id) }
func (i ItemID) String() string  { return string(i) }
func (i ItemID) IsEmpty() bool   { return string(i) == "" }
