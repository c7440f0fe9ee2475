package stdio

// The single stream backing all three standard handles. It is materialized
// as static data, available before any other code runs, and configured for
// simultaneous read and write use. It is never torn down.
var stream = Stream{flags: flagRead | flagWrite}

// Stdin, Stdout and Stderr are three names for the same stream. There is no
// separate buffering state per name: a flush, flag change or pushed back
// byte is visible through all of them.
var (
	Stdin  = &stream
	Stdout = &stream
	Stderr = &stream
)

// Setup registers the three transport callbacks on the shared stream. It is
// expected to be called once by the embedding runtime before any standard
// I/O happens. Using the stream before Setup panics.
func Setup(put PutFunc, get GetFunc, flush FlushFunc) {
	stream.mtx.Lock()
	defer stream.mtx.Unlock()
	stream.put = put
	stream.get = get
	stream.flush = flush
}
