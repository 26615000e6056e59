package mac

// Status is the outcome of one ProcessFrame call, mirroring the
// opaque-handle Codec API's status codes.
type Status int

const (
	// PacketReady means a complete packet was just reassembled and is
	// available from PacketBuffer.
	PacketReady Status = 0
	// PacketReadyAndResubmitPrevious is reserved: the original source
	// declares it but never emits it on the receive path. No MAC
	// operation in this package returns it.
	PacketReadyAndResubmitPrevious Status = 1
	// NeedMore means more frames are required before a packet is ready.
	NeedMore Status = 2
	// BadContext and above are reserved for caller-side handle
	// validation; this package's in-process API has no invalid-handle
	// case and never returns these.
	BadContext Status = 100
)
