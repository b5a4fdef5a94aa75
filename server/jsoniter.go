// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"reflect"
	"sync"
	"unsafe"

	jsoniter "github.com/json-iterator/go"

	"github.com/softbear-arena/arenasync/world"
)

// json is configured once, with custom per-type codecs registered before
// any use. Angle gets a lossy-float encoder: a facing angle does not need
// 6 decimal digits of precision on the wire, so WriteFloat32Lossy trims
// what STATE_DELTA costs without a bit-packed type.
var json = func() jsoniter.API {
	neverEmpty := func(unsafe.Pointer) bool { return false }

	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(envelope{}).String(), encodeEnvelope, neverEmpty)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(envelope{}).String(), decodeEnvelope)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(world.Angle(0)).String(), encodeAngle, neverEmpty)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(world.Angle(0)).String(), decodeAngle)

	return jsoniter.Config{
		EscapeHTML:              false,
		SortMapKeys:             true,
		MarshalFloatWith6Digits: false,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:           true,
	}.Froze()
}()

func encodeAngle(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	angle := *(*world.Angle)(ptr)
	stream.WriteFloat32Lossy(angle.Float32())
}

func decodeAngle(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	*(*world.Angle)(ptr) = world.Angle(iter.ReadFloat32())
}

func encodeEnvelope(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	env := (*envelope)(ptr)
	stream.WriteVal(env.wireJSON())
}

// decodeEnvelopePool reuses byte buffers across decodes of the wrapping
// envelope to avoid an allocation per inbound message.
var decodeEnvelopePool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, 256)
		return &buf
	},
}

func decodeEnvelope(ptr unsafe.Pointer, topLevelIter *jsoniter.Iterator) {
	bufPtr := decodeEnvelopePool.Get().(*[]byte)
	messageBytes := topLevelIter.SkipAndAppendBytes(*bufPtr)

	pool := topLevelIter.Pool()
	iter := pool.BorrowIterator(messageBytes)
	defer pool.ReturnIterator(iter)

	var data interface{}
	var msgType messageType
	iter.ReadObjectCB(func(i *jsoniter.Iterator, field string) bool {
		switch field {
		case "type":
			msgType = messageType(i.ReadString())
		case "data":
			typ, ok := inboundMessageTypes[msgType]
			if !ok {
				i.Skip()
				return true
			}
			val := reflect.New(typ)
			i.ReadVal(val.Interface())
			data = reflect.Indirect(val).Interface()
		default:
			i.Skip()
		}
		return true
	})

	if iter.Error != nil {
		topLevelIter.Error = iter.Error
		return
	}
	if data == nil {
		topLevelIter.Error = errors.New("unrecognized or missing inbound message type")
	}

	*bufPtr = messageBytes[:0]
	decodeEnvelopePool.Put(bufPtr)

	(*envelope)(ptr).Data = data
	(*envelope)(ptr).Type = msgType
}
