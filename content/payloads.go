package content

import (
	"github.com/cloudrobotics/relaycore/errs"
	"github.com/cloudrobotics/relaycore/wire"
)

// interface guards
var (
	_ Codec = connectCodec{}
	_ Codec = commInfoCodec{}
	_ Codec = requestCodec{}
	_ Codec = tagCodec{}
	_ Codec = rosMsgCodec{}
	_ Codec = rosAddCodec{}
	_ Codec = rosRemoveCodec{}
	_ Codec = rosUserCodec{}
)

// ConnectEntry is one (CommID, IP) pair carried by a CONNECT directive.
type ConnectEntry struct {
	CommID wire.CommID
	IP     string
}

// ConnectDirective orders a relay manager to connect to other relay
// managers (§6).
type ConnectDirective []ConnectEntry

type connectCodec struct{}

func (connectCodec) Serialize(w *wire.Writer, c any) error {
	entries, ok := c.(ConnectDirective)
	if !ok {
		return errs.NewSerializationError("CONNECT content must be a ConnectDirective, got %T", c)
	}
	w.AddInt(int32(len(entries)))
	for _, e := range entries {
		w.AddElement([]byte(e.CommID))
		w.AddElement([]byte(e.IP))
	}
	return nil
}

func (connectCodec) Deserialize(r *wire.Reader) (any, error) {
	n, err := r.GetInt()
	if err != nil {
		return nil, err
	}
	out := make(ConnectDirective, 0, n)
	for i := int32(0); i < n; i++ {
		commID, err := r.GetElement()
		if err != nil {
			return nil, err
		}
		ip, err := r.GetElement()
		if err != nil {
			return nil, err
		}
		out = append(out, ConnectEntry{CommID: wire.CommID(commID), IP: string(ip)})
	}
	return out, nil
}

// CommInfo carries the relay manager's own CommID to its container
// manager (§6).
type CommInfo wire.CommID

type commInfoCodec struct{}

func (commInfoCodec) Serialize(w *wire.Writer, c any) error {
	id, ok := c.(CommInfo)
	if !ok {
		return errs.NewSerializationError("COMM_INFO content must be a CommInfo, got %T", c)
	}
	w.AddElement([]byte(id))
	return nil
}

func (commInfoCodec) Deserialize(r *wire.Reader) (any, error) {
	b, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	return CommInfo(b), nil
}

// Request carries a user-attributed request with a type and argument
// list (§6).
type Request struct {
	User string
	Type string
	Args [][]byte
}

type requestCodec struct{}

func (requestCodec) Serialize(w *wire.Writer, c any) error {
	req, ok := c.(Request)
	if !ok {
		return errs.NewSerializationError("REQUEST content must be a Request, got %T", c)
	}
	w.AddElement([]byte(req.User))
	w.AddElement([]byte(req.Type))
	w.AddList(req.Args)
	return nil
}

func (requestCodec) Deserialize(r *wire.Reader) (any, error) {
	user, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	typ, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	args, err := r.GetList()
	if err != nil {
		return nil, err
	}
	return Request{User: string(user), Type: string(typ), Args: args}, nil
}

// Tag names a tagged entity with a type (§6).
type Tag struct {
	User string
	Tag  string
	Type string
}

type tagCodec struct{}

func (tagCodec) Serialize(w *wire.Writer, c any) error {
	t, ok := c.(Tag)
	if !ok {
		return errs.NewSerializationError("TAG content must be a Tag, got %T", c)
	}
	w.AddElement([]byte(t.User))
	w.AddElement([]byte(t.Tag))
	w.AddElement([]byte(t.Type))
	return nil
}

func (tagCodec) Deserialize(r *wire.Reader) (any, error) {
	user, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	tag, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	typ, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	return Tag{User: string(user), Tag: string(tag), Type: string(typ)}, nil
}

// ROSMsg carries a single serialized ROS message between interfaces
// (§6).
type ROSMsg struct {
	Msg     []byte
	DestTag string
	SrcTag  string
	MsgID   string
	User    string
}

type rosMsgCodec struct{}

func (rosMsgCodec) Serialize(w *wire.Writer, c any) error {
	m, ok := c.(ROSMsg)
	if !ok {
		return errs.NewSerializationError("ROS_MSG content must be a ROSMsg, got %T", c)
	}
	w.AddElement(m.Msg)
	w.AddElement([]byte(m.DestTag))
	w.AddElement([]byte(m.SrcTag))
	w.AddElement([]byte(m.MsgID))
	w.AddElement([]byte(m.User))
	return nil
}

func (rosMsgCodec) Deserialize(r *wire.Reader) (any, error) {
	msg, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	destTag, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	srcTag, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	msgID, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	user, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	return ROSMsg{Msg: msg, DestTag: string(destTag), SrcTag: string(srcTag), MsgID: string(msgID), User: string(user)}, nil
}

// ROSAdd requests that a container start a new interface (§6).
type ROSAdd struct {
	RosAddr string
	Tag     string
	MsgType string
	Kind    string // service | publisher | subscriber
}

type rosAddCodec struct{}

func (rosAddCodec) Serialize(w *wire.Writer, c any) error {
	a, ok := c.(ROSAdd)
	if !ok {
		return errs.NewSerializationError("ROS_ADD content must be a ROSAdd, got %T", c)
	}
	w.AddElement([]byte(a.RosAddr))
	w.AddElement([]byte(a.Tag))
	w.AddElement([]byte(a.MsgType))
	w.AddElement([]byte(a.Kind))
	return nil
}

func (rosAddCodec) Deserialize(r *wire.Reader) (any, error) {
	rosAddr, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	tag, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	msgType, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	kind, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	return ROSAdd{RosAddr: string(rosAddr), Tag: string(tag), MsgType: string(msgType), Kind: string(kind)}, nil
}

// ROSRemove requests that a container tear down an interface or node
// (§6). Type names what is being removed (e.g. "interface", "node").
type ROSRemove struct {
	Type string
	Tag  string
}

type rosRemoveCodec struct{}

func (rosRemoveCodec) Serialize(w *wire.Writer, c any) error {
	rm, ok := c.(ROSRemove)
	if !ok {
		return errs.NewSerializationError("ROS_REMOVE content must be a ROSRemove, got %T", c)
	}
	w.AddElement([]byte(rm.Type))
	w.AddElement([]byte(rm.Tag))
	return nil
}

func (rosRemoveCodec) Deserialize(r *wire.Reader) (any, error) {
	typ, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	tag, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	return ROSRemove{Type: string(typ), Tag: string(tag)}, nil
}

// ROSUser announces a change in an interface's user reference set (§6).
type ROSUser struct {
	Tag    string
	Target string
	CommID wire.CommID
	Add    bool
}

type rosUserCodec struct{}

func (rosUserCodec) Serialize(w *wire.Writer, c any) error {
	u, ok := c.(ROSUser)
	if !ok {
		return errs.NewSerializationError("ROS_USER content must be a ROSUser, got %T", c)
	}
	w.AddElement([]byte(u.Tag))
	w.AddElement([]byte(u.Target))
	w.AddElement([]byte(u.CommID))
	if u.Add {
		w.AddByte(1)
	} else {
		w.AddByte(0)
	}
	return nil
}

func (rosUserCodec) Deserialize(r *wire.Reader) (any, error) {
	tag, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	target, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	commID, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	addB, err := r.GetByte()
	if err != nil {
		return nil, err
	}
	return ROSUser{Tag: string(tag), Target: string(target), CommID: wire.CommID(commID), Add: addB != 0}, nil
}

// RegisterBuiltins registers every built-in content codec named in §6
// against reg. cmdReg backs the COMMAND codec's polymorphic inner
// dispatch (§4.C).
func RegisterBuiltins(reg *Registry, cmdReg *CommandRegistry) error {
	builtins := map[string]Codec{
		wire.TypeConnect:   connectCodec{},
		wire.TypeCommInfo:  commInfoCodec{},
		wire.TypeRequest:   requestCodec{},
		wire.TypeTag:       tagCodec{},
		wire.TypeROSMsg:    rosMsgCodec{},
		wire.TypeROSAdd:    rosAddCodec{},
		wire.TypeROSRemove: rosRemoveCodec{},
		wire.TypeROSUser:   rosUserCodec{},
		wire.TypeCommand:   commandCodec{reg: cmdReg},
	}
	for id, codec := range builtins {
		if err := reg.Register(id, codec); err != nil {
			return err
		}
	}
	return nil
}
