package main

// Command is a request to the supervisor. Commands are delivered through a
// bounded mailbox and processed by a single consumer, in order.
// The marker method restricts implementations to this package.
type Command interface {
	supervisorCommand()
}

// StartServer starts the child process. A nil Config reuses the config from
// the last successful start.
type StartServer struct {
	Config *ServerConfig
}

// StopServer writes the server's stop command to its stdin. When Forever is
// set, the supervisor stops accepting commands after this one.
type StopServer struct {
	Forever bool
}

// TellAll broadcasts text to every connected player.
type TellAll struct {
	Text string
}

// WriteCommand writes one console command (newline appended) to the child.
type WriteCommand struct {
	Text string
}

// WriteRaw writes bytes verbatim to the child's stdin.
type WriteRaw struct {
	Data []byte
}

// AgreeToEula overwrites eula.txt beside the server jar with "eula=true".
type AgreeToEula struct{}

func (StartServer) supervisorCommand()  {}
func (StopServer) supervisorCommand()   {}
func (TellAll) supervisorCommand()      {}
func (WriteCommand) supervisorCommand() {}
func (WriteRaw) supervisorCommand()     {}
func (AgreeToEula) supervisorCommand()  {}

// Event is an outbound notification from the supervisor. Events are delivered
// through a bounded stream, in order, and are never dropped: a full stream
// suspends the supervisor until the consumer drains it.
type Event interface {
	supervisorEvent()
}

// ConsoleEvent is a parsed console line. Specific is nil when no classifier
// rule recognized the message.
type ConsoleEvent struct {
	Message  *ConsoleMessage
	Specific ServerEvent
}

// RawStdout is a stdout line that did not match the console header grammar.
type RawStdout struct {
	Line string
}

// RawStderr is a stderr line, passed through unconditionally.
type RawStderr struct {
	Line string
}

// Stopped is emitted exactly once per run, after the stdout reader, stderr
// reader, and process wait have all finished.
type Stopped struct {
	Exit   ExitResult
	Reason ShutdownReason
}

// StartResult reports the outcome of a StartServer command.
type StartResult struct {
	Err error
}

// EulaAgreementResult reports the outcome of an AgreeToEula command.
type EulaAgreementResult struct {
	Err error
}

func (ConsoleEvent) supervisorEvent()        {}
func (RawStdout) supervisorEvent()           {}
func (RawStderr) supervisorEvent()           {}
func (Stopped) supervisorEvent()             {}
func (StartResult) supervisorEvent()         {}
func (EulaAgreementResult) supervisorEvent() {}

// ExitResult is the OS-level outcome of a run. Err is set when the wait
// itself, or one of the stream readers, failed.
type ExitResult struct {
	Code int
	Err  error
}

// ShutdownReason is the resolved explanation for why the child exited.
type ShutdownReason int

const (
	// ReasonUnknown means the exit had no explanation the supervisor knows of.
	ReasonUnknown ShutdownReason = iota
	// ReasonEulaNotAccepted means the stdout scan saw the EULA warning.
	ReasonEulaNotAccepted
	// ReasonRequestedToStop means an operator stop was processed during the
	// run. It overrides ReasonEulaNotAccepted even when the EULA warning was
	// seen first.
	ReasonRequestedToStop
)

func (r ShutdownReason) String() string {
	switch r {
	case ReasonEulaNotAccepted:
		return "eula not accepted"
	case ReasonRequestedToStop:
		return "requested to stop"
	default:
		return "unexplained"
	}
}

// InboundMessage is a message from an external chat channel destined for the
// server's players.
type InboundMessage struct {
	Source  string // channel name (e.g. "Discord")
	Author  string
	Content string
}
