package api

// Operation names a remote action. It doubles as the route under the
// server URL.
type Operation string

const (
	OpNew     Operation = "new"
	OpUpdate  Operation = "update"
	OpAddUser Operation = "adduser"
	OpShow    Operation = "show"
	OpList    Operation = "list"
	OpBorrow  Operation = "borrow"
	OpExtend  Operation = "extend"
	OpReturn  Operation = "return"
)

var operations = map[Operation]bool{
	OpNew: true, OpUpdate: true, OpAddUser: true, OpShow: true,
	OpList: true, OpBorrow: true, OpExtend: true, OpReturn: true,
}

// Valid reports whether op is a known route.
func (op Operation) Valid() bool { return operations[op] }

// Params is the flat request body of an operation. Values are strings,
// integers or booleans.
type Params map[string]interface{}

// Search sections accepted by OpShow.
var Sections = []string{"book_id", "isbn", "title", "author"}

// Record filters accepted by OpList.
var Filters = []string{"all", "not-returned", "overdue"}
