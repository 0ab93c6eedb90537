package mkvio

const (
	ElementTypeUnknown uint8 = 0x0
	ElementTypeMaster  uint8 = 0x1
	ElementTypeUint    uint8 = 0x2
	ElementTypeInt     uint8 = 0x3
	ElementTypeString  uint8 = 0x4
	ElementTypeUnicode uint8 = 0x5
	ElementTypeBinary  uint8 = 0x6
	ElementTypeFloat   uint8 = 0x7
	ElementTypeDate    uint8 = 0x8
)

var (
	ElementUnknown  = ElementRegister{0x0, ElementTypeUnknown, "Unknown"}
	ElementEBML     = ElementRegister{0x1a45dfa3, ElementTypeMaster, "EBML"}
	ElementDocType  = ElementRegister{0x4282, ElementTypeString, "DocType"}
	ElementVoid     = ElementRegister{0xec, ElementTypeBinary, "Void"}
	ElementCRC32    = ElementRegister{0xbf, ElementTypeBinary, "CRC-32"}
	ElementSegment  = ElementRegister{0x18538067, ElementTypeMaster, "Segment"}
	ElementSeekHead = ElementRegister{0x114d9b74, ElementTypeMaster, "SeekHead"}

	ElementInfo          = ElementRegister{0x1549a966, ElementTypeMaster, "Info"}
	ElementTimecodeScale = ElementRegister{0x2ad7b1, ElementTypeUint, "TimecodeScale"}
	ElementDuration      = ElementRegister{0x4489, ElementTypeFloat, "Duration"}
	ElementTitle         = ElementRegister{0x7ba9, ElementTypeUnicode, "Title"}
	ElementMuxingApp     = ElementRegister{0x4d80, ElementTypeUnicode, "MuxingApp"}
	ElementWritingApp    = ElementRegister{0x5741, ElementTypeUnicode, "WritingApp"}

	ElementTracks       = ElementRegister{0x1654ae6b, ElementTypeMaster, "Tracks"}
	ElementTrackEntry   = ElementRegister{0xae, ElementTypeMaster, "TrackEntry"}
	ElementTrackNumber  = ElementRegister{0xd7, ElementTypeUint, "TrackNumber"}
	ElementTrackUID     = ElementRegister{0x73c5, ElementTypeUint, "TrackUID"}
	ElementTrackType    = ElementRegister{0x83, ElementTypeUint, "TrackType"}
	ElementName         = ElementRegister{0x536e, ElementTypeUnicode, "Name"}
	ElementLanguage     = ElementRegister{0x22b59c, ElementTypeString, "Language"}
	ElementCodecID      = ElementRegister{0x86, ElementTypeString, "CodecID"}
	ElementCodecName    = ElementRegister{0x258688, ElementTypeUnicode, "CodecName"}
	ElementCodecPrivate = ElementRegister{0x63a2, ElementTypeBinary, "CodecPrivate"}
	ElementVideo        = ElementRegister{0xe0, ElementTypeMaster, "Video"}
	ElementAudio        = ElementRegister{0xe1, ElementTypeMaster, "Audio"}

	ElementCluster     = ElementRegister{0x1f43b675, ElementTypeMaster, "Cluster"}
	ElementTimecode    = ElementRegister{0xe7, ElementTypeUint, "Timecode"}
	ElementPosition    = ElementRegister{0xa7, ElementTypeUint, "Position"}
	ElementPrevSize    = ElementRegister{0xab, ElementTypeUint, "PrevSize"}
	ElementSimpleBlock = ElementRegister{0xa3, ElementTypeBinary, "SimpleBlock"}
	ElementBlockGroup  = ElementRegister{0xa0, ElementTypeMaster, "BlockGroup"}
	ElementBlock       = ElementRegister{0xa1, ElementTypeBinary, "Block"}

	ElementCues                = ElementRegister{0x1c53bb6b, ElementTypeMaster, "Cues"}
	ElementCuePoint            = ElementRegister{0xbb, ElementTypeMaster, "CuePoint"}
	ElementCueTime             = ElementRegister{0xb3, ElementTypeUint, "CueTime"}
	ElementCueTrackPositions   = ElementRegister{0xb7, ElementTypeMaster, "CueTrackPositions"}
	ElementCueTrack            = ElementRegister{0xf7, ElementTypeUint, "CueTrack"}
	ElementCueClusterPosition  = ElementRegister{0xf1, ElementTypeUint, "CueClusterPosition"}
	ElementCueBlockNumber      = ElementRegister{0x5378, ElementTypeUint, "CueBlockNumber"}
	ElementChapters            = ElementRegister{0x1043a770, ElementTypeMaster, "Chapters"}
	ElementTags                = ElementRegister{0x1254c367, ElementTypeMaster, "Tags"}
	ElementAttachments         = ElementRegister{0x1941a469, ElementTypeMaster, "Attachments"}
)

// GetElementRegister returns the register of the element subset this package
// walks; anything else comes back as ElementUnknown and is skipped by size.
func GetElementRegister(id uint32) ElementRegister {
	switch id {
	case ElementEBML.ID:
		return ElementEBML
	case ElementDocType.ID:
		return ElementDocType
	case ElementVoid.ID:
		return ElementVoid
	case ElementCRC32.ID:
		return ElementCRC32
	case ElementSegment.ID:
		return ElementSegment
	case ElementSeekHead.ID:
		return ElementSeekHead
	case ElementInfo.ID:
		return ElementInfo
	case ElementTimecodeScale.ID:
		return ElementTimecodeScale
	case ElementDuration.ID:
		return ElementDuration
	case ElementTitle.ID:
		return ElementTitle
	case ElementMuxingApp.ID:
		return ElementMuxingApp
	case ElementWritingApp.ID:
		return ElementWritingApp
	case ElementTracks.ID:
		return ElementTracks
	case ElementTrackEntry.ID:
		return ElementTrackEntry
	case ElementTrackNumber.ID:
		return ElementTrackNumber
	case ElementTrackUID.ID:
		return ElementTrackUID
	case ElementTrackType.ID:
		return ElementTrackType
	case ElementName.ID:
		return ElementName
	case ElementLanguage.ID:
		return ElementLanguage
	case ElementCodecID.ID:
		return ElementCodecID
	case ElementCodecName.ID:
		return ElementCodecName
	case ElementCodecPrivate.ID:
		return ElementCodecPrivate
	case ElementVideo.ID:
		return ElementVideo
	case ElementAudio.ID:
		return ElementAudio
	case ElementCluster.ID:
		return ElementCluster
	case ElementTimecode.ID:
		return ElementTimecode
	case ElementPosition.ID:
		return ElementPosition
	case ElementPrevSize.ID:
		return ElementPrevSize
	case ElementSimpleBlock.ID:
		return ElementSimpleBlock
	case ElementBlockGroup.ID:
		return ElementBlockGroup
	case ElementBlock.ID:
		return ElementBlock
	case ElementCues.ID:
		return ElementCues
	case ElementCuePoint.ID:
		return ElementCuePoint
	case ElementCueTime.ID:
		return ElementCueTime
	case ElementCueTrackPositions.ID:
		return ElementCueTrackPositions
	case ElementCueTrack.ID:
		return ElementCueTrack
	case ElementCueClusterPosition.ID:
		return ElementCueClusterPosition
	case ElementCueBlockNumber.ID:
		return ElementCueBlockNumber
	case ElementChapters.ID:
		return ElementChapters
	case ElementTags.ID:
		return ElementTags
	case ElementAttachments.ID:
		return ElementAttachments
	default:
		return ElementUnknown
	}
}
