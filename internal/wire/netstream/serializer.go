// Package netstream implements the network serializer: it packs a
// netframe.Frame into one or more size-bounded, checksummed datagrams
// for sending, and feeds received datagrams into per-frame builders
// that are harvested once complete.
package netstream

import (
	"github.com/rtspwire/wireclient/internal/wire/checksum"
	"github.com/rtspwire/wireclient/internal/wire/memstream"
	"github.com/rtspwire/wireclient/internal/wire/netframe"
)

// Serializer is the single owner of one socket's worth of in-progress
// frame builders. It is not safe for concurrent use; callers own it
// from a single goroutine, same as the memstream cursors it's built on.
type Serializer struct {
	endianness memstream.Endianness
	builders   map[uint32]*netframe.Builder
	recorder   Recorder
}

// NewSerializer returns a Serializer that encodes and decodes using the
// given byte order.
func NewSerializer(endianness memstream.Endianness) *Serializer {
	return &Serializer{
		endianness: endianness,
		builders:   make(map[uint32]*netframe.Builder),
	}
}

// SetRecorder installs the observability sink. A nil Recorder (the
// zero value) is valid and discards every call.
func (s *Serializer) SetRecorder(r Recorder) {
	s.recorder = r
}

func (s *Serializer) rec() Recorder {
	if s.recorder == nil {
		return noopRecorder{}
	}
	return s.recorder
}

// Encode packs frame into the datagrams needed to carry it, in send
// order. It returns nil if frame fails validation (empty data, empty
// or oversized task/flow tags, or a data size beyond FrameMaxSize) or
// if any datagram failed to serialize, in which case nothing is sent
// rather than a truncated sequence.
func (s *Serializer) Encode(frame netframe.Frame) [][]byte {
	taskBytes := []byte(frame.Task)
	flowBytes := []byte(frame.Flow)

	if len(frame.Data) == 0 ||
		len(frame.Data) > netframe.FrameMaxSize ||
		len(taskBytes) == 0 || len(taskBytes) > netframe.ChunkTaskSize ||
		len(flowBytes) == 0 || len(flowBytes) > netframe.ChunkFlowSize {
		return nil
	}

	taskField := padField(taskBytes, netframe.ChunkTaskSize)
	flowField := padField(flowBytes, netframe.ChunkFlowSize)

	frameSize := len(frame.Data)
	index := 0
	slaveNumber := 1
	var datagrams [][]byte

	for index < frameSize {
		left := frameSize - index
		grow := 0
		size := netframe.DatagramHeaderSize

		if index == 0 {
			grow += min(left, netframe.ChunkMasterDataMaxSize)
			size += netframe.ChunkMasterHeaderSize + grow
		}

		for grow < left && netframe.DatagramMaxSize-size > netframe.ChunkSlaveHeaderSize {
			freeSize := netframe.DatagramMaxSize - netframe.ChunkSlaveHeaderSize - size
			dataSize := min(freeSize, netframe.ChunkSlaveDataMaxSize)
			packSize := min(dataSize, left-grow)
			size += netframe.ChunkSlaveHeaderSize + packSize
			grow += packSize
		}

		w := memstream.NewWriter()
		w.SetEndianness(s.endianness)

		w.WriteUint16(netframe.DatagramProtocolVersion)
		w.WriteUint16(uint16(size))
		w.WriteUint32(0)
		w.WriteUint16(0)

		for w.Position() < size {
			if index == 0 {
				freeSize := size - w.Position() - netframe.ChunkMasterHeaderSize
				dataSize := min(freeSize, netframe.ChunkMasterDataMaxSize)
				allSize := netframe.ChunkMasterHeaderSize + dataSize

				w.WriteUint8(netframe.ChunkMasterID)
				w.WriteUint16(uint16(allSize))
				w.WriteRaw(taskField)
				w.WriteRaw(flowField)
				w.WriteUint32(frame.ID)
				w.WriteUint8(frame.Interpretation)
				w.WriteUint8(frame.Priority)
				w.WriteUint16(frame.Time)
				w.WriteUint16(frame.Number)
				w.WriteUint32(uint32(frameSize))
				w.WriteRaw(frame.Data[index : index+dataSize])

				index += dataSize
			} else {
				freeSize := size - w.Position() - netframe.ChunkSlaveHeaderSize
				dataSize := min(freeSize, netframe.ChunkSlaveDataMaxSize)
				allSize := netframe.ChunkSlaveHeaderSize + dataSize

				w.WriteUint8(netframe.ChunkSlaveID)
				w.WriteUint16(uint16(allSize))
				w.WriteRaw(taskField)
				w.WriteRaw(flowField)
				w.WriteUint32(frame.ID)
				w.WriteUint8(frame.Interpretation)
				w.WriteUint8(frame.Priority)
				w.WriteUint16(frame.Time)
				w.WriteUint16(uint16(slaveNumber))
				slaveNumber++
				if netframe.Extended {
					w.WriteUint32(uint32(index))
				}
				w.WriteRaw(frame.Data[index : index+dataSize])

				index += dataSize
			}
		}

		w.Seek(8)
		w.WriteUint16(checksum.CRC16(w.Bytes(), 8, 9))

		if w.Status() != memstream.StatusOK {
			return nil
		}
		datagrams = append(datagrams, w.Bytes())
	}

	for range datagrams {
		s.rec().DatagramEmitted()
	}
	return datagrams
}

// Feed parses one received datagram and dispatches its chunks into the
// frame builder table. Malformed input is rejected without panicking;
// Feed never returns an error, callers observe outcomes through the
// injected Recorder and by polling TakeCompleted.
func (s *Serializer) Feed(datagram []byte) {
	if len(datagram) <= netframe.DatagramHeaderSize || len(datagram) > netframe.DatagramMaxSize {
		s.rec().DatagramRejected(ReasonLength)
		return
	}

	r := memstream.NewReader(datagram)
	r.SetEndianness(s.endianness)

	version := r.ReadUint16()
	declaredSize := r.ReadUint16()
	r.SkipRaw(4)
	crc := r.ReadUint16()

	if version != netframe.DatagramProtocolVersion {
		s.rec().DatagramRejected(ReasonVersion)
		return
	}
	if int(declaredSize) != len(datagram) {
		s.rec().DatagramRejected(ReasonSizeMismatch)
		return
	}
	if checksum.CRC16(datagram, 8, 9) != crc {
		s.rec().DatagramRejected(ReasonCRC)
		return
	}

	minHeader := min(netframe.ChunkMasterHeaderSize, netframe.ChunkSlaveHeaderSize)

	for r.BytesAvailable() > minHeader {
		chunkID := r.ReadUint8()

		switch chunkID {
		case netframe.ChunkMasterID:
			if !s.feedMaster(r, datagram) {
				s.rec().DatagramRejected(ReasonChunk)
				return
			}
		case netframe.ChunkSlaveID:
			if !s.feedSlave(r, datagram) {
				s.rec().DatagramRejected(ReasonChunk)
				return
			}
		default:
			s.rec().DatagramRejected(ReasonChunk)
			return
		}
	}

	s.rec().DatagramAccepted()
}

func (s *Serializer) feedMaster(r *memstream.Serializer, datagram []byte) bool {
	if r.BytesAvailable() < netframe.ChunkMasterHeaderSize {
		return false
	}

	chunkSize := r.ReadUint16()
	var taskBuf [netframe.ChunkTaskSize]byte
	r.ReadRaw(taskBuf[:])
	var flowBuf [netframe.ChunkFlowSize]byte
	r.ReadRaw(flowBuf[:])
	frameID := r.ReadUint32()
	interpretation := r.ReadUint8()
	priority := r.ReadUint8()
	frameTime := r.ReadUint16()
	frameNumber := r.ReadUint16()
	declaredFrameSize := r.ReadUint32()

	payloadSize := int(chunkSize) - netframe.ChunkMasterHeaderSize
	if int(chunkSize) <= netframe.ChunkMasterHeaderSize ||
		int(chunkSize) > netframe.ChunkMaxSize ||
		int(declaredFrameSize) <= 0 ||
		int(declaredFrameSize) > netframe.FrameMaxSize ||
		payloadSize > r.BytesAvailable() {
		return false
	}

	payloadStart := r.Position()
	payload := datagram[payloadStart : payloadStart+payloadSize]
	r.SkipRaw(payloadSize)

	partial := netframe.Frame{
		ID:             frameID,
		Number:         frameNumber,
		Interpretation: interpretation,
		Time:           frameTime,
		Priority:       priority,
		Task:           trimField(taskBuf[:]),
		Flow:           trimField(flowBuf[:]),
		Data:           payload,
	}

	s.builderFor(frameID).PutMasterChunk(int(declaredFrameSize), partial)
	return true
}

func (s *Serializer) feedSlave(r *memstream.Serializer, datagram []byte) bool {
	if r.BytesAvailable() < netframe.ChunkSlaveHeaderSize {
		return false
	}

	chunkSize := r.ReadUint16()
	var taskBuf [netframe.ChunkTaskSize]byte
	r.ReadRaw(taskBuf[:])
	var flowBuf [netframe.ChunkFlowSize]byte
	r.ReadRaw(flowBuf[:])
	frameID := r.ReadUint32()
	interpretation := r.ReadUint8()
	priority := r.ReadUint8()
	frameTime := r.ReadUint16()
	_ = r.ReadUint16() // slave chunk number: ordering is positional, not used by the builder

	var frameOffset uint32
	if netframe.Extended {
		frameOffset = r.ReadUint32()
	}

	payloadSize := int(chunkSize) - netframe.ChunkSlaveHeaderSize
	if int(chunkSize) <= netframe.ChunkSlaveHeaderSize ||
		int(chunkSize) > netframe.ChunkMaxSize ||
		payloadSize > r.BytesAvailable() {
		return false
	}

	payloadStart := r.Position()
	payload := datagram[payloadStart : payloadStart+payloadSize]
	r.SkipRaw(payloadSize)

	partial := netframe.Frame{
		ID:             frameID,
		Interpretation: interpretation,
		Time:           frameTime,
		Priority:       priority,
		Task:           trimField(taskBuf[:]),
		Flow:           trimField(flowBuf[:]),
		Data:           payload,
	}

	if netframe.Extended {
		s.builderFor(frameID).PutSlaveChunk(int(frameOffset), partial)
		return true
	}

	if b, ok := s.builders[frameID]; ok {
		b.PutSlaveChunk(0, partial)
	}
	return true
}

func (s *Serializer) builderFor(id uint32) *netframe.Builder {
	b, ok := s.builders[id]
	if !ok {
		b = &netframe.Builder{}
		s.builders[id] = b
	}
	return b
}

// TakeCompleted removes and returns every fully reassembled frame.
func (s *Serializer) TakeCompleted() []netframe.Frame {
	var out []netframe.Frame
	for id, b := range s.builders {
		if b.Completed() {
			out = append(out, b.Frame())
			delete(s.builders, id)
		}
	}
	s.rec().BuildersInProgress(len(s.builders))
	for range out {
		s.rec().FrameCompleted()
	}
	return out
}

// Clear drops every in-progress builder, discarding partial frames.
func (s *Serializer) Clear() {
	s.builders = make(map[uint32]*netframe.Builder)
	s.rec().BuildersInProgress(0)
}

// InProgress reports how many frame builders are currently awaiting
// further chunks.
func (s *Serializer) InProgress() int {
	return len(s.builders)
}

func padField(b []byte, size int) []byte {
	out := make([]byte, size)
	copy(out, b)
	return out
}

func trimField(b []byte) string {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return string(b[:n])
}
